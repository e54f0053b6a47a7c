package engine

import (
	"fmt"
	"strings"
	"time"
)

// MergePolicy controls whether consecutive utterances from the same speaker
// are joined into a single transcript line.
type MergePolicy struct {
	Enabled bool
	MaxGap  time.Duration // merge when next.start - prev.end <= MaxGap
}

// DefaultMergePolicy joins same-speaker utterances separated by at most one second.
var DefaultMergePolicy = MergePolicy{Enabled: true, MaxGap: time.Second}

// FormatTimestamp renders a millisecond offset as MM:SS, or HH:MM:SS once
// the offset reaches one hour. Sub-second remainders are floored.
func FormatTimestamp(ms int) string {
	total := ms / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// mergeUtterances joins consecutive utterances spoken by the same speaker
// when the silence between them is within the policy's gap. The merged span
// runs from the first start to the last end.
func mergeUtterances(utts []Utterance, p MergePolicy) []Utterance {
	if !p.Enabled || len(utts) < 2 {
		return utts
	}

	maxGapMS := int(p.MaxGap / time.Millisecond)
	merged := make([]Utterance, 0, len(utts))
	cur := utts[0]

	for _, u := range utts[1:] {
		gap := u.StartMS - cur.EndMS
		if u.Speaker == cur.Speaker && gap <= maxGapMS {
			if u.EndMS > cur.EndMS {
				cur.EndMS = u.EndMS
			}
			if u.Text != "" {
				if cur.Text != "" {
					cur.Text += " "
				}
				cur.Text += u.Text
			}
			continue
		}
		merged = append(merged, cur)
		cur = u
	}
	return append(merged, cur)
}

// RenderTranscript renders utterances as human-readable lines:
//
//	[00:00–00:03] Speaker A: hi there
//
// Utterances keep their original (chronological) order. An utterance with no
// speaker label renders as bare "Speaker".
func RenderTranscript(utts []Utterance, p MergePolicy) string {
	utts = mergeUtterances(utts, p)

	var sb strings.Builder
	for i, u := range utts {
		if i > 0 {
			sb.WriteByte('\n')
		}
		speaker := "Speaker"
		if u.Speaker != "" {
			speaker = "Speaker " + u.Speaker
		}
		fmt.Fprintf(&sb, "[%s–%s] %s: %s",
			FormatTimestamp(u.StartMS), FormatTimestamp(u.EndMS), speaker, u.Text)
	}
	return sb.String()
}
