package engine

import (
	"context"
	"fmt"
	"log/slog"
)

// Transcribe runs the full pipeline for one Instagram URL: validate the URL,
// resolve the direct video asset, transcribe it, render the transcript.
// Stages run strictly in order and a failed stage short-circuits: an invalid
// URL never reaches the resolver, a non-video post never reaches the
// transcription service. The pipeline holds no state between calls.
func Transcribe(ctx context.Context, rawURL string) (*Result, error) {
	ref, err := ParseReference(rawURL)
	if err != nil {
		return nil, err
	}

	resolveCtx, cancel := context.WithTimeout(ctx, cfg.ResolveTimeout)
	defer cancel()

	IncrResolveRequests()
	asset, err := cfg.Resolver.Resolve(resolveCtx, ref)
	if err != nil {
		IncrResolveErrors()
		return nil, fmt.Errorf("resolve instagram post: %w", err)
	}

	slog.Info("video asset resolved",
		slog.String("shortcode", ref.Shortcode),
		slog.Float64("duration_sec", asset.Duration),
	)

	transcribeCtx, cancel := context.WithTimeout(ctx, cfg.TranscribeTimeout)
	defer cancel()

	IncrTranscriptionJobs()
	tr, err := cfg.Transcriber.Transcribe(transcribeCtx, asset.MediaURL)
	if err != nil {
		IncrTranscriptionErrors()
		return nil, fmt.Errorf("transcribe video: %w", err)
	}

	text := RenderTranscript(tr.Utterances, cfg.Merge)
	if text == "" {
		// Some jobs complete without speaker utterances; fall back to the
		// plain transcript text.
		text = tr.Text
	}

	IncrTranscriptsCompleted()
	return &Result{
		SourceURL:     ref.URL,
		JobID:         tr.JobID,
		Transcript:    text,
		LanguageCode:  tr.LanguageCode,
		Confidence:    tr.Confidence,
		AudioDuration: tr.AudioDuration,
	}, nil
}
