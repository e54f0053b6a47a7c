package instagram

import (
	"bytes"
	"context"
	"fmt"

	"github.com/anatolykoptev/go_social/internal/engine"
	"golang.org/x/net/html"
)

// resolveFromOGTags fetches the post HTML and pulls the video URL out of its
// OpenGraph meta tags. Used when the JSON endpoint serves a page instead of
// JSON, which happens intermittently for logged-out requests.
func resolveFromOGTags(ctx context.Context, pageURL string) (*engine.VideoAsset, error) {
	body, status, err := fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrUpstreamResolution, err)
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}
	return assetFromOGTags(body)
}

// assetFromOGTags extracts og:video / og:description from post HTML.
// A page with og:image but no og:video is a non-video post; a page with
// neither is a login wall.
func assetFromOGTags(page []byte) (*engine.VideoAsset, error) {
	og := parseOGTags(page)

	videoURL := og["og:video"]
	if videoURL == "" {
		videoURL = og["og:video:secure_url"]
	}
	if videoURL != "" {
		return &engine.VideoAsset{
			MediaURL: videoURL,
			Caption:  og["og:description"],
		}, nil
	}

	if og["og:image"] != "" {
		return nil, fmt.Errorf("%w: page has no og:video tag", engine.ErrNoVideoContent)
	}
	return nil, fmt.Errorf("%w: no opengraph tags, likely a login wall", engine.ErrAccessDenied)
}

// parseOGTags collects property → content for all <meta property="og:..."> tags.
func parseOGTags(page []byte) map[string]string {
	og := make(map[string]string)

	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return og
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var property, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "property":
					property = a.Val
				case "content":
					content = a.Val
				}
			}
			if len(property) > 3 && property[:3] == "og:" && content != "" {
				og[property] = content
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return og
}
