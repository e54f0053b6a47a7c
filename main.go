// go_social — Instagram transcript MCP server.
//
// Exposes one MCP tool: instagram_transcript. Given an Instagram post/reel
// URL it resolves the underlying video asset and returns a timestamped,
// speaker-labeled transcript produced by AssemblyAI.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go_social/internal/engine"
	"github.com/anatolykoptev/go_social/internal/engine/assemblyai"
	"github.com/anatolykoptev/go_social/internal/engine/instagram"
	"github.com/anatolykoptev/go_social/internal/socialserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using process environment")
	}

	// The only fatal misconfiguration: transcription is impossible without a key.
	apiKey := env.Str("ASSEMBLYAI_API_KEY", "")
	if apiKey == "" {
		slog.Error("ASSEMBLYAI_API_KEY is not set")
		os.Exit(1)
	}

	initEngine(apiKey)

	slog.Info("starting go_social",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_social",
		Version: version,
	}, nil)

	socialserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 1))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_social",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine(apiKey string) {
	c := engine.Config{
		ResolveTimeout:    env.Duration("RESOLVE_TIMEOUT", 30*time.Second),
		TranscribeTimeout: env.Duration("TRANSCRIBE_TIMEOUT", 10*time.Minute),
		Merge: engine.MergePolicy{
			Enabled: env.Str("MERGE_SEGMENTS", "true") == "true",
			MaxGap:  env.Duration("MERGE_MAX_GAP", time.Second),
		},
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	// Instagram serves JSON to browser TLS fingerprints and login walls to
	// everything else, so the stealth client is strongly preferred.
	bc, err := stealth.NewClient(stealth.WithTimeout(15))
	if err != nil {
		slog.Warn("stealth client init failed, falling back to net/http", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	c.Resolver = instagram.NewResolver()
	c.Transcriber = assemblyai.NewClient(apiKey,
		assemblyai.WithPollInterval(env.Duration("ASSEMBLYAI_POLL_INTERVAL", 3*time.Second)),
		assemblyai.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)

	engine.Init(c)
}
