package captions

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// FormatTimestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm).
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// WriteSRT writes segments as a SubRip file.
func WriteSRT(w io.Writer, segments []Segment) error {
	for i, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1, FormatTimestamp(seg.StartTime), FormatTimestamp(seg.EndTime), text); err != nil {
			return fmt.Errorf("write srt cue %d: %w", i+1, err)
		}
	}
	return nil
}

// FormatSRT returns segments as SubRip text.
func FormatSRT(segments []Segment) string {
	var sb strings.Builder
	_ = WriteSRT(&sb, segments)
	return sb.String()
}
