package engine

import "context"

// ReferenceKind identifies which Instagram URL shape a reference came from.
type ReferenceKind string

const (
	KindPost  ReferenceKind = "p"
	KindReel  ReferenceKind = "reel"
	KindIGTV  ReferenceKind = "tv"
	KindStory ReferenceKind = "story"
)

// Reference is a validated Instagram post identifier plus the original URL.
// Construct via ParseReference; Shortcode is always non-empty.
type Reference struct {
	Shortcode string
	Kind      ReferenceKind
	URL       string
}

// VideoAsset is a resolved, time-limited direct media URL plus metadata.
// The CDN URL expires, so assets are consumed immediately and never stored.
type VideoAsset struct {
	MediaURL string
	Duration float64 // seconds, 0 if unknown
	Caption  string
}

// Utterance is one speaker-labeled span of transcribed speech.
// Offsets are milliseconds from the start of the media.
type Utterance struct {
	Speaker string `json:"speaker"`
	StartMS int    `json:"start"`
	EndMS   int    `json:"end"`
	Text    string `json:"text"`
}

// Transcription is the terminal output of a transcription job.
type Transcription struct {
	JobID         string
	Utterances    []Utterance
	Text          string // full text, fallback when the job reports no utterances
	LanguageCode  string
	Confidence    float64
	AudioDuration int // seconds
}

// Resolver turns a validated reference into a direct video asset.
type Resolver interface {
	Resolve(ctx context.Context, ref Reference) (*VideoAsset, error)
}

// Transcriber submits a media URL for transcription and blocks until the
// job reaches a terminal state.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaURL string) (*Transcription, error)
}

// Result is what a completed pipeline run returns to the caller.
type Result struct {
	SourceURL     string
	JobID         string
	Transcript    string
	LanguageCode  string
	Confidence    float64
	AudioDuration int // seconds
}
