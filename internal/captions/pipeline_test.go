package captions

import "testing"

func TestBuildEmptyTranscript(t *testing.T) {
	cfg := DefaultConfig()
	got := Build("", 60, nil, cfg)
	if len(got) != 1 || got[0].Text != cfg.Placeholder || got[0].StartTime != 0 || got[0].EndTime != 60 {
		t.Fatalf("expected one placeholder spanning 60s, got %+v", got)
	}
}

func TestBuildJapaneseScenario(t *testing.T) {
	got := Build("こんにちは。今日は天気がいいです。さようなら。", 30, nil, DefaultConfig())
	if len(got) != 3 {
		t.Fatalf("expected 3 captions, got %+v", got)
	}
	if got[0].StartTime != 0 || got[2].EndTime != 30 {
		t.Fatalf("captions do not cover [0,30]: %+v", got)
	}
}

func TestBuildWithWordTimestamps(t *testing.T) {
	var words []Segment
	for i := 0; i < 24; i++ {
		start := float64(i) * 0.5
		words = append(words, Segment{Text: "word", StartTime: start, EndTime: start + 0.45})
	}
	// The recogniser clock runs short of the real audio length.
	got := BuildFromWords("", 24, words, DefaultConfig())
	if len(got) < 2 {
		t.Fatalf("expected several captions, got %+v", got)
	}
	if got[len(got)-1].EndTime != 24 {
		t.Fatalf("expected captions rescaled to 24s, got last end %v", got[len(got)-1].EndTime)
	}
	for i := 0; i < len(got)-1; i++ {
		if got[i].Duration() < DefaultMinDuration {
			t.Errorf("caption %d too short: %+v", i, got[i])
		}
		if got[i].Duration() > DefaultMaxCaptionSeconds+tolerance {
			t.Errorf("caption %d too long: %+v", i, got[i])
		}
	}
}

func TestBuildKeepsSentenceTimestampsApart(t *testing.T) {
	sentences := []Segment{
		{Text: "welcome back to the show", StartTime: 0, EndTime: 10},
		{Text: "today we talk about coffee", StartTime: 10, EndTime: 20},
		{Text: "and where to buy good beans", StartTime: 20, EndTime: 30},
		{Text: "thanks for listening", StartTime: 30, EndTime: 40},
	}
	got := Build("", 40, sentences, DefaultConfig())
	if len(got) != 4 {
		t.Fatalf("expected 4 captions, got %+v", got)
	}
	for i, s := range got {
		if s.Text != sentences[i].Text || !almostEqual(s.StartTime, sentences[i].StartTime) || !almostEqual(s.EndTime, sentences[i].EndTime) {
			t.Errorf("caption %d = %+v, want %+v", i, s, sentences[i])
		}
	}
}
