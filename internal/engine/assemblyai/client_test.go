package assemblyai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anatolykoptev/go_social/internal/engine"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithPollInterval(time.Millisecond),
	)
}

func TestTranscribeCompletes(t *testing.T) {
	var polls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /transcript", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("Authorization = %q, want test-key", got)
		}
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode submit body: %v", err)
		}
		if req.AudioURL != "https://cdn.example/clip.mp4" {
			t.Errorf("audio_url = %q", req.AudioURL)
		}
		if !req.SpeakerLabels {
			t.Error("speaker_labels not enabled")
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "j1", "status": "queued"})
	})
	mux.HandleFunc("GET /transcript/j1", func(w http.ResponseWriter, r *http.Request) {
		switch polls.Add(1) {
		case 1:
			json.NewEncoder(w).Encode(map[string]any{"id": "j1", "status": "queued"})
		case 2:
			json.NewEncoder(w).Encode(map[string]any{"id": "j1", "status": "processing"})
		default:
			json.NewEncoder(w).Encode(map[string]any{
				"id":     "j1",
				"status": "completed",
				"text":   "welcome back glad to be here",
				"utterances": []map[string]any{
					{"speaker": "A", "start": 0, "end": 2000, "text": "welcome back"},
					{"speaker": "B", "start": 4000, "end": 6000, "text": "glad to be here"},
				},
				"language_code":  "en",
				"confidence":     0.91,
				"audio_duration": 7,
			})
		}
	})

	c := testClient(t, mux)
	tr, err := c.Transcribe(context.Background(), "https://cdn.example/clip.mp4")
	if err != nil {
		t.Fatalf("Transcribe error: %v", err)
	}

	if tr.JobID != "j1" {
		t.Errorf("job id = %q, want j1", tr.JobID)
	}
	if len(tr.Utterances) != 2 {
		t.Fatalf("utterances = %d, want 2", len(tr.Utterances))
	}
	if tr.Utterances[0].Speaker != "A" || tr.Utterances[0].EndMS != 2000 {
		t.Errorf("utterance[0] = %+v", tr.Utterances[0])
	}
	if tr.LanguageCode != "en" {
		t.Errorf("language = %q, want en", tr.LanguageCode)
	}
	if polls.Load() < 3 {
		t.Errorf("polls = %d, want at least 3", polls.Load())
	}
}

func TestTranscribeJobErrorState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transcript", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "j2", "status": "queued"})
	})
	mux.HandleFunc("GET /transcript/j2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"id":     "j2",
			"status": "error",
			"error":  "Download error: unable to fetch media",
		})
	})

	c := testClient(t, mux)
	tr, err := c.Transcribe(context.Background(), "https://cdn.example/expired.mp4")
	if !errors.Is(err, engine.ErrUpstreamTranscription) {
		t.Fatalf("err = %v, want ErrUpstreamTranscription", err)
	}
	if tr != nil {
		t.Errorf("transcription = %+v, want nil", tr)
	}
}

func TestTranscribeSubmissionRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transcript", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid audio_url"})
	})

	c := testClient(t, mux)
	_, err := c.Transcribe(context.Background(), "not-a-url")
	if !errors.Is(err, engine.ErrTranscriptionFailed) {
		t.Fatalf("err = %v, want ErrTranscriptionFailed", err)
	}
}

func TestTranscribeContextDeadline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transcript", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "j3", "status": "queued"})
	})
	mux.HandleFunc("GET /transcript/j3", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "j3", "status": "processing"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := NewClient("test-key",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithPollInterval(5*time.Millisecond),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.Transcribe(ctx, "https://cdn.example/clip.mp4")
	if !errors.Is(err, engine.ErrUpstreamTranscription) {
		t.Fatalf("err = %v, want ErrUpstreamTranscription", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want wrapped DeadlineExceeded", err)
	}
}

func TestTranscribeServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	c := NewClient("test-key",
		WithBaseURL(srv.URL),
		WithPollInterval(time.Millisecond),
	)
	_, err := c.Transcribe(context.Background(), "https://cdn.example/clip.mp4")
	if !errors.Is(err, engine.ErrUpstreamTranscription) {
		t.Fatalf("err = %v, want ErrUpstreamTranscription", err)
	}
}
