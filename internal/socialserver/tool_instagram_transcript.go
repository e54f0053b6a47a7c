package socialserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_social/internal/engine"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type InstagramTranscriptInput struct {
	URL string `json:"url" jsonschema:"Instagram post or reel URL (e.g. https://instagram.com/p/ABC123/ or https://instagram.com/reel/XYZ789/)"`
}

type InstagramTranscriptOutput struct {
	URL           string  `json:"url"`
	JobID         string  `json:"job_id,omitempty"`
	Transcript    string  `json:"transcript"`
	Language      string  `json:"language,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
	AudioDuration int     `json:"audio_duration_sec,omitempty"`
}

func registerInstagramTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "instagram_transcript",
		Description: "Extract a timestamped, speaker-labeled transcript from an Instagram video post, reel, or IGTV. Resolves the direct video URL and transcribes it with AssemblyAI. Returns the transcript text plus detected language, confidence, and audio duration.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input InstagramTranscriptInput) (*mcp.CallToolResult, InstagramTranscriptOutput, error) {
		if input.URL == "" {
			return nil, InstagramTranscriptOutput{}, fmt.Errorf("url is required")
		}

		reqID := uuid.NewString()
		slog.Info("instagram_transcript: request",
			slog.String("request_id", reqID),
			slog.String("url", input.URL),
		)

		res, err := engine.Transcribe(ctx, input.URL)
		if err != nil {
			slog.Warn("instagram_transcript: failed",
				slog.String("request_id", reqID),
				slog.Any("error", err),
			)
			return nil, InstagramTranscriptOutput{}, toolError(err)
		}

		slog.Info("instagram_transcript: done",
			slog.String("request_id", reqID),
			slog.String("job_id", res.JobID),
			slog.Int("audio_duration_sec", res.AudioDuration),
		)

		return nil, InstagramTranscriptOutput{
			URL:           res.SourceURL,
			JobID:         res.JobID,
			Transcript:    res.Transcript,
			Language:      res.LanguageCode,
			Confidence:    res.Confidence,
			AudioDuration: res.AudioDuration,
		}, nil
	})
}

// toolError turns pipeline errors into messages with actionable guidance,
// keeping the cause chain intact for the host's diagnostics.
func toolError(err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidURL):
		return fmt.Errorf("%w — expected an instagram.com /p/, /reel/ or /tv/ link", err)
	case errors.Is(err, engine.ErrNoVideoContent):
		return fmt.Errorf("%w — only video posts can be transcribed", err)
	case errors.Is(err, engine.ErrAccessDenied):
		return fmt.Errorf("%w — the post is private or requires login; only public posts are supported", err)
	case errors.Is(err, engine.ErrNotFound):
		return fmt.Errorf("%w — check the URL; the post may have been deleted", err)
	default:
		return err
	}
}
