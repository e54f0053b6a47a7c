package engine

import (
	"net/http"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	ResolveTimeout    time.Duration // per-request budget for Instagram resolution
	TranscribeTimeout time.Duration // per-request budget for submit + poll
	Merge             MergePolicy
	HTTPClient        *http.Client
	BrowserClient     *stealth.BrowserClient // nil = plain net/http fetches only
	Resolver          Resolver
	Transcriber       Transcriber
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (instagram, assemblyai).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.ResolveTimeout <= 0 {
		c.ResolveTimeout = 30 * time.Second
	}
	if c.TranscribeTimeout <= 0 {
		c.TranscribeTimeout = 10 * time.Minute
	}
	cfg = c
	Cfg = &cfg
}
