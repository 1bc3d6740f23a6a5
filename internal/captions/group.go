package captions

import (
	"strings"
	"unicode/utf8"
)

// GroupWords folds word-level recogniser output into caption units using the
// same limits as Split: sentence ends or CJKChunkChars runes for CJK text,
// LatinChunkWords words otherwise. Timing comes from the first and last word.
func GroupWords(words []Segment, cfg Config) []Segment {
	cfg = cfg.normalized()
	if len(words) == 0 {
		return nil
	}

	var all strings.Builder
	for _, w := range words {
		all.WriteString(w.Text)
	}
	cjk := IsCJK(all.String(), cfg.CJKThreshold)

	var out []Segment
	var current *Segment
	count := 0
	flush := func() {
		if current != nil {
			out = append(out, *current)
			current = nil
			count = 0
		}
	}

	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		if current == nil {
			current = &Segment{Text: text, StartTime: w.StartTime, EndTime: w.EndTime}
		} else {
			if cjk {
				current.Text += text
			} else {
				current.Text += " " + text
			}
			if w.EndTime > current.EndTime {
				current.EndTime = w.EndTime
			}
		}

		if cjk {
			count = runeLen(current.Text)
			last, _ := utf8.DecodeLastRuneInString(text)
			if isTerminator(last) || isCloser(last) || count >= cfg.CJKChunkChars {
				flush()
			}
			continue
		}
		count++
		last, _ := utf8.DecodeLastRuneInString(text)
		if count >= cfg.LatinChunkWords || isTerminator(last) {
			flush()
		}
	}
	flush()
	return out
}
