package captions

import (
	"reflect"
	"testing"
)

func TestSplitJapaneseSentences(t *testing.T) {
	got := Split("こんにちは。今日は天気がいいです。さようなら。", DefaultConfig())
	want := []string{"こんにちは。", "今日は天気がいいです。", "さようなら。"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitKeepsTrailingPunctuationAndQuotes(t *testing.T) {
	got := Split("「本当ですか！？」と聞いた。そうです", DefaultConfig())
	want := []string{"「本当ですか！？」", "と聞いた。", "そうです"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitCJKFallsBackToChunks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CJKChunkChars = 5
	got := Split("あいうえおかきくけこさし", cfg)
	want := []string{"あいうえお", "かきくけこ", "さし"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitShortCJKWithoutPunctuationStaysWhole(t *testing.T) {
	got := Split("ありがとう", DefaultConfig())
	if len(got) != 1 || got[0] != "ありがとう" {
		t.Fatalf("expected a single unit, got %q", got)
	}
}

func TestSplitLatinWordChunks(t *testing.T) {
	got := Split("the quick brown fox jumps over the lazy dog", DefaultConfig())
	want := []string{"the quick brown fox", "jumps over the lazy", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		if got := Split(input, DefaultConfig()); len(got) != 0 {
			t.Errorf("expected no units for %q, got %q", input, got)
		}
	}
}

func TestIsCJK(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"こんにちは", true},
		{"hello world", false},
		{"今日はGoの話", true},
		{"12345 !!", false},
		{"a long english sentence with one 字", false},
	}
	for _, tt := range tests {
		if got := IsCJK(tt.text, DefaultCJKThreshold); got != tt.want {
			t.Errorf("IsCJK(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
