// Package assemblyai is a minimal client for the AssemblyAI v2 transcript
// API: submit a media URL, poll the job until it reaches a terminal state.
package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anatolykoptev/go_social/internal/engine"
)

const defaultBaseURL = "https://api.assemblyai.com/v2"

// Job states reported by the API: queued → processing → {completed | error}.
const (
	statusQueued     = "queued"
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusError      = "error"
)

// Client implements engine.Transcriber against the AssemblyAI REST API.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint (tests point this at httptest).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		pollInterval: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type submitRequest struct {
	AudioURL          string `json:"audio_url"`
	SpeakerLabels     bool   `json:"speaker_labels"`
	LanguageDetection bool   `json:"language_detection"`
	AutoHighlights    bool   `json:"auto_highlights"`
}

type transcriptResponse struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	Error         string             `json:"error"`
	Text          string             `json:"text"`
	LanguageCode  string             `json:"language_code"`
	Confidence    float64            `json:"confidence"`
	AudioDuration int                `json:"audio_duration"`
	Utterances    []engine.Utterance `json:"utterances"`
}

// Transcribe submits mediaURL with speaker labels enabled and blocks until
// the job reaches a terminal state. A submission the API rejects yields
// ErrTranscriptionFailed carrying the reported reason; a job that ends in
// the error state, times out, or cannot be reached yields
// ErrUpstreamTranscription. No retries are attempted.
func (c *Client) Transcribe(ctx context.Context, mediaURL string) (*engine.Transcription, error) {
	jobID, err := c.submit(ctx, mediaURL)
	if err != nil {
		return nil, err
	}

	return c.pollUntilDone(ctx, jobID)
}

func (c *Client) submit(ctx context.Context, mediaURL string) (string, error) {
	body, err := json.Marshal(submitRequest{
		AudioURL:          mediaURL,
		SpeakerLabels:     true,
		LanguageDetection: true,
		AutoHighlights:    true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %w", engine.ErrUpstreamTranscription, err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/transcript", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: submit: %w", engine.ErrUpstreamTranscription, err)
	}

	if resp.status < 200 || resp.status >= 300 {
		if resp.body.Error != "" {
			return "", fmt.Errorf("%w: %s", engine.ErrTranscriptionFailed, resp.body.Error)
		}
		return "", fmt.Errorf("%w: submit returned status %d", engine.ErrUpstreamTranscription, resp.status)
	}
	if resp.body.ID == "" {
		return "", fmt.Errorf("%w: submit response has no job id", engine.ErrUpstreamTranscription)
	}
	return resp.body.ID, nil
}

func (c *Client) pollUntilDone(ctx context.Context, jobID string) (*engine.Transcription, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: job %s: %w", engine.ErrUpstreamTranscription, jobID, ctx.Err())
		case <-time.After(c.pollInterval):
		}

		resp, err := c.do(ctx, http.MethodGet, "/transcript/"+jobID, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: poll job %s: %w", engine.ErrUpstreamTranscription, jobID, err)
		}
		if resp.status != http.StatusOK {
			return nil, fmt.Errorf("%w: poll job %s returned status %d", engine.ErrUpstreamTranscription, jobID, resp.status)
		}

		switch resp.body.Status {
		case statusCompleted:
			return &engine.Transcription{
				JobID:         resp.body.ID,
				Utterances:    resp.body.Utterances,
				Text:          resp.body.Text,
				LanguageCode:  resp.body.LanguageCode,
				Confidence:    resp.body.Confidence,
				AudioDuration: resp.body.AudioDuration,
			}, nil
		case statusError:
			return nil, fmt.Errorf("%w: job %s: %s", engine.ErrUpstreamTranscription, jobID, resp.body.Error)
		case statusQueued, statusProcessing:
			// keep polling
		default:
			return nil, fmt.Errorf("%w: job %s in unknown state %q", engine.ErrUpstreamTranscription, jobID, resp.body.Status)
		}
	}
}

type apiResponse struct {
	status int
	body   transcriptResponse
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := &apiResponse{status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&out.body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}
