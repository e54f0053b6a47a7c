package engine

import "errors"

// Closed error taxonomy for the pipeline. Every failure from an external
// collaborator is re-signaled as one of these via %w wrapping, so callers
// can handle each case with errors.Is without ever seeing a raw
// collaborator error.
var (
	// ErrInvalidURL: the input does not match any recognized Instagram URL shape.
	ErrInvalidURL = errors.New("invalid instagram url")

	// ErrNoVideoContent: the post exists and is public but carries no video.
	ErrNoVideoContent = errors.New("post has no video content")

	// ErrAccessDenied: the post is private or requires login.
	ErrAccessDenied = errors.New("post is private or inaccessible")

	// ErrNotFound: the post does not exist or was deleted.
	ErrNotFound = errors.New("post not found")

	// ErrUpstreamResolution: Instagram fetch failed for transport-level reasons.
	ErrUpstreamResolution = errors.New("instagram resolution failed")

	// ErrTranscriptionFailed: the transcription service rejected the submission
	// with a reported reason.
	ErrTranscriptionFailed = errors.New("transcription failed")

	// ErrUpstreamTranscription: the transcription job errored, timed out, or
	// the service was unreachable.
	ErrUpstreamTranscription = errors.New("transcription service error")
)
