package captions

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsCJK reports whether text is mostly written in Japanese or Chinese script.
// threshold is the minimum share of Hiragana/Katakana/Han runes among all letters.
func IsCJK(text string, threshold float64) bool {
	letters, cjk := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if isCJKRune(r) {
			cjk++
		}
	}
	if letters == 0 || cjk == 0 {
		return false
	}
	return float64(cjk)/float64(letters) >= threshold
}

func isCJKRune(r rune) bool {
	return unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han)
}

func isTerminator(r rune) bool {
	switch r {
	case '。', '！', '？', '.', '!', '?':
		return true
	}
	return false
}

// isCloser reports runes that belong to the sentence they follow, like a closing
// quote after a full stop.
func isCloser(r rune) bool {
	switch r {
	case '」', '』', '）', ')', '"', '”', '’':
		return true
	}
	return false
}

// Split breaks a transcript into caption-sized units. The result never contains
// empty strings and is empty only for blank input.
func Split(text string, cfg Config) []string {
	cfg = cfg.normalized()
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if IsCJK(text, cfg.CJKThreshold) {
		return splitCJK(text, cfg.CJKChunkChars)
	}
	return splitWords(text, cfg.LatinChunkWords)
}

func splitCJK(text string, chunkChars int) []string {
	units := splitSentences(text)
	if len(units) <= 1 && utf8.RuneCountInString(text) > chunkChars {
		return chunkRunes(text, chunkChars)
	}
	return units
}

// splitSentences cuts after runs of sentence terminators, keeping the
// terminators and any closing brackets with the sentence.
func splitSentences(text string) []string {
	runes := []rune(text)
	var units []string
	var current strings.Builder
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if !isTerminator(runes[i]) {
			continue
		}
		for i+1 < len(runes) && (isTerminator(runes[i+1]) || isCloser(runes[i+1])) {
			i++
			current.WriteRune(runes[i])
		}
		if unit := strings.TrimSpace(current.String()); unit != "" {
			units = append(units, unit)
		}
		current.Reset()
	}
	if unit := strings.TrimSpace(current.String()); unit != "" {
		units = append(units, unit)
	}
	return units
}

func chunkRunes(text string, size int) []string {
	var units []string
	var current []rune
	for _, r := range text {
		if unicode.IsSpace(r) && len(current) == 0 {
			continue
		}
		current = append(current, r)
		if len(current) >= size {
			if unit := strings.TrimSpace(string(current)); unit != "" {
				units = append(units, unit)
			}
			current = current[:0]
		}
	}
	if unit := strings.TrimSpace(string(current)); unit != "" {
		units = append(units, unit)
	}
	return units
}

func splitWords(text string, perChunk int) []string {
	words := strings.Fields(text)
	units := make([]string, 0, (len(words)+perChunk-1)/perChunk)
	for start := 0; start < len(words); start += perChunk {
		end := start + perChunk
		if end > len(words) {
			end = len(words)
		}
		units = append(units, strings.Join(words[start:end], " "))
	}
	return units
}
