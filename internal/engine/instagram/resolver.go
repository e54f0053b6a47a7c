// Package instagram resolves public Instagram posts to direct CDN video URLs.
//
// Primary:  the post's JSON endpoint (?__a=1&__d=dis) — full metadata.
// Fallback: og:video meta tags from the post HTML when Instagram serves a
// page instead of JSON.
package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go_social/internal/engine"
)

const jsonQuery = "?__a=1&__d=dis"

// Instagram media types as reported by the JSON endpoint.
const (
	mediaTypeImage    = 1
	mediaTypeVideo    = 2
	mediaTypeCarousel = 8
)

const defaultBaseURL = "https://www.instagram.com"

// Resolver implements engine.Resolver against instagram.com.
type Resolver struct {
	baseURL string
}

type Option func(*Resolver)

// WithBaseURL overrides the Instagram host (tests point this at httptest).
func WithBaseURL(u string) Option {
	return func(r *Resolver) { r.baseURL = u }
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type postResponse struct {
	Items        []postItem `json:"items"`
	RequireLogin bool       `json:"require_login"`
}

type postItem struct {
	MediaType     int            `json:"media_type"`
	VideoVersions []videoVersion `json:"video_versions"`
	VideoDuration float64        `json:"video_duration"`
	Caption       *postCaption   `json:"caption"`
	CarouselMedia []postItem     `json:"carousel_media"`
}

type videoVersion struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type postCaption struct {
	Text string `json:"text"`
}

// Resolve fetches the post's metadata and extracts the direct video URL.
// Non-video posts yield ErrNoVideoContent; private and deleted posts yield
// ErrAccessDenied and ErrNotFound respectively. Transport failures surface
// as ErrUpstreamResolution with the cause preserved.
func (r *Resolver) Resolve(ctx context.Context, ref engine.Reference) (*engine.VideoAsset, error) {
	pageURL := r.canonicalURL(ref)

	body, status, err := fetch(ctx, pageURL+jsonQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrUpstreamResolution, err)
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var resp postResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// Instagram served HTML instead of JSON; try the og:video meta tags.
		return resolveFromOGTags(ctx, pageURL)
	}
	if resp.RequireLogin {
		return nil, fmt.Errorf("%w: instagram requires login for %s", engine.ErrAccessDenied, ref.Shortcode)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: empty response for %s", engine.ErrNotFound, ref.Shortcode)
	}

	return extractAsset(resp.Items[0], ref)
}

// extractAsset picks the direct video URL out of a post item. Carousels use
// their first video entry.
func extractAsset(item postItem, ref engine.Reference) (*engine.VideoAsset, error) {
	caption := ""
	if item.Caption != nil {
		caption = item.Caption.Text
	}

	switch item.MediaType {
	case mediaTypeVideo:
		if len(item.VideoVersions) == 0 || item.VideoVersions[0].URL == "" {
			return nil, fmt.Errorf("%w: video post %s has no media url", engine.ErrUpstreamResolution, ref.Shortcode)
		}
		return &engine.VideoAsset{
			MediaURL: item.VideoVersions[0].URL,
			Duration: item.VideoDuration,
			Caption:  caption,
		}, nil

	case mediaTypeCarousel:
		for _, m := range item.CarouselMedia {
			if m.MediaType == mediaTypeVideo && len(m.VideoVersions) > 0 && m.VideoVersions[0].URL != "" {
				return &engine.VideoAsset{
					MediaURL: m.VideoVersions[0].URL,
					Duration: m.VideoDuration,
					Caption:  caption,
				}, nil
			}
		}
		return nil, fmt.Errorf("%w: carousel %s has no video entries", engine.ErrNoVideoContent, ref.Shortcode)

	default:
		return nil, fmt.Errorf("%w: %s is media type %d", engine.ErrNoVideoContent, ref.Shortcode, item.MediaType)
	}
}

// canonicalURL rebuilds the clean post URL from a reference, dropping any
// query-parameter noise the user pasted in.
func (r *Resolver) canonicalURL(ref engine.Reference) string {
	if ref.Kind == engine.KindStory {
		u := strings.SplitN(ref.URL, "?", 2)[0]
		if !strings.HasPrefix(u, "http") {
			u = "https://" + u
		}
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		return u
	}
	return fmt.Sprintf("%s/%s/%s/", r.baseURL, ref.Kind, ref.Shortcode)
}

// checkStatus maps Instagram HTTP statuses onto the pipeline error kinds.
func checkStatus(status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return fmt.Errorf("%w: instagram returned %d", engine.ErrNotFound, status)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: instagram returned %d", engine.ErrAccessDenied, status)
	case status >= 300 && status < 400:
		// Redirect to the login page means the post needs an account.
		if strings.Contains(string(body), "/accounts/login") {
			return fmt.Errorf("%w: redirected to login", engine.ErrAccessDenied)
		}
		return fmt.Errorf("%w: unexpected redirect (%d)", engine.ErrUpstreamResolution, status)
	default:
		return fmt.Errorf("%w: instagram returned %d", engine.ErrUpstreamResolution, status)
	}
}

// fetch retrieves a URL using the stealth BrowserClient (Chrome TLS
// fingerprint) when available, falling back to the standard net/http client.
// Instagram serves login walls to non-browser TLS fingerprints, so the
// BrowserClient is strongly preferred.
func fetch(ctx context.Context, targetURL string) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	if engine.Cfg.BrowserClient != nil {
		// BrowserClient.Do takes no context; on this path the deadline is
		// enforced by the stealth client's own request timeout.
		headers := stealth.ChromeHeaders()
		headers["accept"] = "*/*"
		data, _, status, err := engine.Cfg.BrowserClient.Do("GET", targetURL, headers, nil)
		return data, status, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", stealth.RandomUserAgent())
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	client := engine.Cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return data, resp.StatusCode, nil
}
