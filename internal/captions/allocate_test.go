package captions

import (
	"math"
	"strings"
	"testing"
)

const tolerance = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func assertContiguous(t *testing.T, segments []Segment, total float64) {
	t.Helper()
	if len(segments) == 0 {
		t.Fatal("expected at least one segment")
	}
	if !almostEqual(segments[0].StartTime, 0) {
		t.Fatalf("expected first segment to start at 0, got %v", segments[0].StartTime)
	}
	for i := 1; i < len(segments); i++ {
		if !almostEqual(segments[i].StartTime, segments[i-1].EndTime) {
			t.Fatalf("segment %d starts at %v but previous ends at %v", i, segments[i].StartTime, segments[i-1].EndTime)
		}
	}
	if last := segments[len(segments)-1].EndTime; last != total {
		t.Fatalf("expected last segment to end at %v, got %v", total, last)
	}
}

func TestAllocateJapaneseScenario(t *testing.T) {
	cfg := DefaultConfig()
	units := Split("こんにちは。今日は天気がいいです。さようなら。", cfg)
	got := Allocate(units, 30, nil, cfg)

	if len(got) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(got))
	}
	assertContiguous(t, got, 30)
	for i, seg := range got {
		if !almostEqual(seg.Duration(), 10) {
			t.Errorf("segment %d: expected ~10s, got %v", i, seg.Duration())
		}
	}
}

func TestAllocateCoversTotalForVariousInputs(t *testing.T) {
	inputs := []string{
		"one",
		"a b c d e f g h i j k l m n o p q r s t u v w x y z",
		"短い。とても長い文章がここに続いていきます。終わり。",
		strings.Repeat("word ", 200),
	}
	totals := []float64{0.5, 3, 17.25, 60, 600}
	cfg := DefaultConfig()
	for _, text := range inputs {
		for _, total := range totals {
			got := Allocate(Split(text, cfg), total, nil, cfg)
			assertContiguous(t, got, total)
		}
	}
}

func TestAllocateRespectsUnitBoundsWhenFeasible(t *testing.T) {
	cfg := DefaultConfig()
	units := []string{"a", strings.Repeat("b", 100), "c", "d"}
	got := Allocate(units, 20, nil, cfg)
	assertContiguous(t, got, 20)
	for i, seg := range got {
		if seg.Duration() < cfg.MinUnitSeconds-tolerance || seg.Duration() > cfg.MaxUnitSeconds+tolerance {
			t.Errorf("segment %d: duration %v outside [%v, %v]", i, seg.Duration(), cfg.MinUnitSeconds, cfg.MaxUnitSeconds)
		}
	}
	if !almostEqual(got[1].Duration(), cfg.MaxUnitSeconds) {
		t.Errorf("expected the long unit to be capped at %v, got %v", cfg.MaxUnitSeconds, got[1].Duration())
	}
}

func TestAllocateEqualWeighting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weighting = WeightEqual
	got := Allocate([]string{"a", "much longer unit", "c"}, 9, nil, cfg)
	for i, seg := range got {
		if !almostEqual(seg.Duration(), 3) {
			t.Errorf("segment %d: expected 3s, got %v", i, seg.Duration())
		}
	}
}

func TestAllocateEmptyYieldsPlaceholder(t *testing.T) {
	cfg := DefaultConfig()
	got := Allocate(Split("", cfg), 60, nil, cfg)
	if len(got) != 1 {
		t.Fatalf("expected a single placeholder, got %d segments", len(got))
	}
	if got[0].Text != cfg.Placeholder || got[0].StartTime != 0 || got[0].EndTime != 60 {
		t.Fatalf("unexpected placeholder %+v", got[0])
	}
}

func TestAllocateCoercesNonPositiveTotal(t *testing.T) {
	cfg := DefaultConfig()
	for _, total := range []float64{0, -5, math.NaN()} {
		got := Allocate([]string{"hello"}, total, nil, cfg)
		if got[len(got)-1].EndTime != cfg.MinTotalSeconds {
			t.Errorf("total %v: expected end %v, got %v", total, cfg.MinTotalSeconds, got[len(got)-1].EndTime)
		}
	}
}

func TestAllocateRescalesExternalTimestamps(t *testing.T) {
	external := []Segment{
		{Text: "first", StartTime: 0, EndTime: 4},
		{Text: "second", StartTime: 4, EndTime: 8},
		{Text: "third", StartTime: 9, EndTime: 10},
	}
	got := Allocate([]string{"ignored"}, 20, external, DefaultConfig())
	if len(got) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(got))
	}
	want := []Segment{
		{Text: "first", StartTime: 0, EndTime: 8},
		{Text: "second", StartTime: 8, EndTime: 16},
		{Text: "third", StartTime: 18, EndTime: 20},
	}
	for i := range want {
		if got[i].Text != want[i].Text || !almostEqual(got[i].StartTime, want[i].StartTime) || !almostEqual(got[i].EndTime, want[i].EndTime) {
			t.Errorf("segment %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestAllocateRescaleKeepsLeadingSilence(t *testing.T) {
	external := []Segment{
		{Text: "intro", StartTime: 2, EndTime: 4},
		{Text: "body", StartTime: 4, EndTime: 8},
	}
	got := Allocate(nil, 16, external, DefaultConfig())
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %+v", got)
	}
	if !almostEqual(got[0].StartTime, 4) || !almostEqual(got[0].EndTime, 8) {
		t.Fatalf("first segment = %+v, want [4,8)", got[0])
	}
	if !almostEqual(got[1].EndTime, 16) {
		t.Fatalf("last segment = %+v, want end 16", got[1])
	}
}

func TestAllocateRescaleResolvesOverlapsWithoutDroppingText(t *testing.T) {
	external := []Segment{
		{Text: "b", StartTime: 1, EndTime: 2},
		{Text: "a", StartTime: 0, EndTime: 3},
		{Text: "c", StartTime: 2.5, EndTime: 4},
	}
	got := Allocate(nil, 4, external, DefaultConfig())
	for i := 1; i < len(got); i++ {
		if got[i].StartTime < got[i-1].EndTime {
			t.Fatalf("segments %d and %d overlap: %+v %+v", i-1, i, got[i-1], got[i])
		}
	}
	var text []string
	for _, s := range got {
		text = append(text, s.Text)
	}
	joined := strings.Join(text, " ")
	for _, word := range []string{"a", "b", "c"} {
		if !strings.Contains(joined, word) {
			t.Errorf("expected %q to survive rescaling, got %q", word, joined)
		}
	}
	if got[len(got)-1].EndTime != 4 {
		t.Errorf("expected last end 4, got %v", got[len(got)-1].EndTime)
	}
}

func TestAllocateRescaleIsScaleInvariant(t *testing.T) {
	external := []Segment{
		{Text: "one", StartTime: 0.2, EndTime: 1.1},
		{Text: "two", StartTime: 1.0, EndTime: 2.4},
		{Text: "three", StartTime: 2.6, EndTime: 3.9},
		{Text: "four", StartTime: 4.0, EndTime: 5.5},
	}
	const total = 12.0
	base := Allocate(nil, total, external, DefaultConfig())

	for _, k := range []float64{0.5, 2, 7.3} {
		scaled := make([]Segment, len(external))
		for i, s := range external {
			scaled[i] = Segment{Text: s.Text, StartTime: s.StartTime * k, EndTime: s.EndTime * k}
		}
		got := Allocate(nil, total*k, scaled, DefaultConfig())
		if len(got) != len(base) {
			t.Fatalf("k=%v: expected %d segments, got %d", k, len(base), len(got))
		}
		for i := range base {
			if got[i].Text != base[i].Text ||
				math.Abs(got[i].StartTime-base[i].StartTime*k) > 1e-9*k*total ||
				math.Abs(got[i].EndTime-base[i].EndTime*k) > 1e-9*k*total {
				t.Errorf("k=%v segment %d: expected %+v scaled, got %+v", k, i, base[i], got[i])
			}
		}
	}
}

func TestAllocateIgnoresUnusableExternalTimestamps(t *testing.T) {
	external := []Segment{{Text: "", StartTime: 0, EndTime: 5}, {Text: "x", StartTime: 0, EndTime: 0}}
	got := Allocate([]string{"fallback text"}, 10, external, DefaultConfig())
	if len(got) != 1 || got[0].Text != "fallback text" {
		t.Fatalf("expected proportional fallback, got %+v", got)
	}
}
