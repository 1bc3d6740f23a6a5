// Package keywords picks search terms out of a transcript with a plain
// stop-word filtered frequency count.
package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	DefaultTopN = 5
	MaxTopN     = 10
)

type script int

const (
	scriptNone script = iota
	scriptWord
	scriptKatakana
	scriptHan
	scriptHiragana
)

func classify(r rune) script {
	switch {
	case unicode.Is(unicode.Katakana, r), r == 'ー':
		return scriptKatakana
	case unicode.Is(unicode.Han, r), r == '々':
		return scriptHan
	case unicode.Is(unicode.Hiragana, r):
		return scriptHiragana
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return scriptWord
	}
	return scriptNone
}

// Tokens splits text into normalised candidate tokens in order of appearance.
// Text is NFKC normalised and lower-cased. Latin words and digits split on
// anything that is not a letter or digit; Japanese runs are further split at
// script boundaries so katakana words and kanji compounds come out on their
// own while hiragana particles and inflections are dropped.
func Tokens(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))

	var tokens []string
	var current strings.Builder
	currentScript := scriptNone
	flush := func() {
		if current.Len() > 0 && currentScript != scriptHiragana {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		currentScript = scriptNone
	}

	for _, r := range text {
		s := classify(r)
		if s != currentScript {
			flush()
		}
		if s == scriptNone {
			continue
		}
		currentScript = s
		current.WriteRune(r)
	}
	flush()
	return tokens
}

func keep(token string) bool {
	if IsStopWord(token) {
		return false
	}
	numeric := true
	for _, r := range token {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return false
	}
	// Single runes are verb stems or stray letters, never useful queries.
	return utf8.RuneCountInString(token) > 1
}

// Extract returns up to topN distinct keywords ordered by frequency, ties
// broken by first occurrence. topN <= 0 means DefaultTopN; values above
// MaxTopN are capped.
func Extract(text string, topN int) []string {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if topN > MaxTopN {
		topN = MaxTopN
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range Tokens(text) {
		if !keep(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	return order
}

// Query joins the top keywords into a single search query string.
func Query(text string, topN int) string {
	return strings.Join(Extract(text, topN), " ")
}
