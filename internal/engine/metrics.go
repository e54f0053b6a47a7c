package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ResolveRequests      atomic.Int64
	ResolveErrors        atomic.Int64
	TranscriptionJobs    atomic.Int64
	TranscriptionErrors  atomic.Int64
	TranscriptsCompleted atomic.Int64
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"resolve_requests":      metrics.ResolveRequests.Load(),
		"resolve_errors":        metrics.ResolveErrors.Load(),
		"transcription_jobs":    metrics.TranscriptionJobs.Load(),
		"transcription_errors":  metrics.TranscriptionErrors.Load(),
		"transcripts_completed": metrics.TranscriptsCompleted.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"resolve_requests", "resolve_errors",
		"transcription_jobs", "transcription_errors",
		"transcripts_completed",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func IncrResolveRequests()      { metrics.ResolveRequests.Add(1) }
func IncrResolveErrors()        { metrics.ResolveErrors.Add(1) }
func IncrTranscriptionJobs()    { metrics.TranscriptionJobs.Add(1) }
func IncrTranscriptionErrors()  { metrics.TranscriptionErrors.Add(1) }
func IncrTranscriptsCompleted() { metrics.TranscriptsCompleted.Add(1) }
