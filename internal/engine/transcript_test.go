package engine

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{1000, "00:01"},
		{1500, "00:01"},
		{3000, "00:03"},
		{59999, "00:59"},
		{60000, "01:00"},
		{754000, "12:34"},
		{3599999, "59:59"},
		{3600000, "01:00:00"},
		{3661000, "01:01:01"},
		{3665000, "01:01:05"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.ms); got != tt.want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestRenderTranscriptMergesWithinGap(t *testing.T) {
	utts := []Utterance{
		{Speaker: "1", StartMS: 0, EndMS: 1500, Text: "hi"},
		{Speaker: "1", StartMS: 1600, EndMS: 3000, Text: "there"},
	}

	// 100ms gap, threshold 100ms: one merged line.
	got := RenderTranscript(utts, MergePolicy{Enabled: true, MaxGap: 100 * time.Millisecond})
	want := "[00:00–00:03] Speaker 1: hi there"
	if got != want {
		t.Errorf("merged render = %q, want %q", got, want)
	}

	// Threshold below the gap: two lines.
	got = RenderTranscript(utts, MergePolicy{Enabled: true, MaxGap: 99 * time.Millisecond})
	want = "[00:00–00:01] Speaker 1: hi\n[00:01–00:03] Speaker 1: there"
	if got != want {
		t.Errorf("split render = %q, want %q", got, want)
	}
}

func TestRenderTranscriptSpeakerChangeNeverMerges(t *testing.T) {
	utts := []Utterance{
		{Speaker: "A", StartMS: 0, EndMS: 1000, Text: "hello"},
		{Speaker: "B", StartMS: 1000, EndMS: 2000, Text: "hey"},
		{Speaker: "A", StartMS: 2000, EndMS: 3000, Text: "how are you"},
	}
	got := RenderTranscript(utts, DefaultMergePolicy)
	want := "[00:00–00:01] Speaker A: hello\n" +
		"[00:01–00:02] Speaker B: hey\n" +
		"[00:02–00:03] Speaker A: how are you"
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestRenderTranscriptHourRollover(t *testing.T) {
	utts := []Utterance{
		{Speaker: "2", StartMS: 3661000, EndMS: 3665000, Text: "ok"},
	}
	got := RenderTranscript(utts, DefaultMergePolicy)
	want := "[01:01:01–01:01:05] Speaker 2: ok"
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestRenderTranscriptMergeDisabled(t *testing.T) {
	utts := []Utterance{
		{Speaker: "1", StartMS: 0, EndMS: 1000, Text: "a"},
		{Speaker: "1", StartMS: 1000, EndMS: 2000, Text: "b"},
	}
	got := RenderTranscript(utts, MergePolicy{Enabled: false})
	want := "[00:00–00:01] Speaker 1: a\n[00:01–00:02] Speaker 1: b"
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestRenderTranscriptEmptySpeaker(t *testing.T) {
	utts := []Utterance{
		{StartMS: 0, EndMS: 2000, Text: "no label here"},
	}
	got := RenderTranscript(utts, DefaultMergePolicy)
	want := "[00:00–00:02] Speaker: no label here"
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestRenderTranscriptEmpty(t *testing.T) {
	if got := RenderTranscript(nil, DefaultMergePolicy); got != "" {
		t.Errorf("render = %q, want empty", got)
	}
}

func TestMergeUtterancesChain(t *testing.T) {
	// Three consecutive same-speaker utterances collapse into one span.
	utts := []Utterance{
		{Speaker: "1", StartMS: 0, EndMS: 1000, Text: "one"},
		{Speaker: "1", StartMS: 1200, EndMS: 2000, Text: "two"},
		{Speaker: "1", StartMS: 2100, EndMS: 3000, Text: "three"},
	}
	merged := mergeUtterances(utts, DefaultMergePolicy)
	if len(merged) != 1 {
		t.Fatalf("len = %d, want 1", len(merged))
	}
	if merged[0].Text != "one two three" {
		t.Errorf("text = %q, want %q", merged[0].Text, "one two three")
	}
	if merged[0].StartMS != 0 || merged[0].EndMS != 3000 {
		t.Errorf("span = [%d,%d], want [0,3000]", merged[0].StartMS, merged[0].EndMS)
	}
}
