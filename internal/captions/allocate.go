package captions

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Allocate gives every unit a [start, end) window inside [0, total).
//
// When external carries usable timestamps (from a speech recogniser) they are
// rescaled so the last one ends exactly at total and units are ignored.
// Otherwise total is shared among units proportionally. Blank input yields a
// single placeholder segment covering the whole duration.
func Allocate(units []string, total float64, external []Segment, cfg Config) []Segment {
	cfg = cfg.normalized()
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		total = cfg.MinTotalSeconds
	}

	if out := rescale(external, total); len(out) > 0 {
		return out
	}

	cleaned := make([]string, 0, len(units))
	for _, u := range units {
		if u = strings.TrimSpace(u); u != "" {
			cleaned = append(cleaned, u)
		}
	}
	if len(cleaned) == 0 {
		return []Segment{{Text: cfg.Placeholder, StartTime: 0, EndTime: total}}
	}
	return proportional(cleaned, total, cfg)
}

func proportional(units []string, total float64, cfg Config) []Segment {
	weights := make([]float64, len(units))
	for i, u := range units {
		if cfg.Weighting == WeightEqual {
			weights[i] = 1
			continue
		}
		weights[i] = float64(visibleRunes(u))
		if weights[i] == 0 {
			weights[i] = 1
		}
	}

	shares := distribute(weights, total, cfg.MinUnitSeconds, cfg.MaxUnitSeconds)
	segments := make([]Segment, len(units))
	start := 0.0
	for i, u := range units {
		end := start + shares[i]
		if i == len(units)-1 {
			end = total
		}
		segments[i] = Segment{Text: u, StartTime: start, EndTime: end}
		start = end
	}
	return segments
}

func visibleRunes(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// distribute shares total among weights, keeping every share inside [lo, hi]
// whenever that is possible at all. Shares are clamp(k*w, lo, hi) with k found
// by bisection, since their sum only grows with k. When the bounds cannot be
// honoured (too many or too few units for total) plain proportional shares are
// used instead.
func distribute(weights []float64, total, lo, hi float64) []float64 {
	n := len(weights)
	shares := make([]float64, n)
	sum, minWeight := 0.0, math.Inf(1)
	for _, w := range weights {
		sum += w
		minWeight = math.Min(minWeight, w)
	}
	if float64(n)*lo > total || float64(n)*hi < total {
		for i, w := range weights {
			shares[i] = total * w / sum
		}
		return shares
	}

	clamped := func(k float64) float64 {
		s := 0.0
		for _, w := range weights {
			s += clamp(k*w, lo, hi)
		}
		return s
	}
	low, high := 0.0, hi/minWeight
	for i := 0; i < 100 && high-low > 1e-12*high; i++ {
		mid := (low + high) / 2
		if clamped(mid) < total {
			low = mid
		} else {
			high = mid
		}
	}
	for i, w := range weights {
		shares[i] = clamp(high*w, lo, hi)
	}
	return shares
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// rescale stretches recogniser timestamps onto [0, total). It returns nil when
// the timestamps carry no usable timing or text.
func rescale(external []Segment, total float64) []Segment {
	maxEnd := 0.0
	for _, s := range external {
		if strings.TrimSpace(s.Text) == "" || math.IsNaN(s.EndTime) || math.IsInf(s.EndTime, 0) {
			continue
		}
		if s.EndTime > maxEnd {
			maxEnd = s.EndTime
		}
	}
	if maxEnd <= 0 {
		return nil
	}
	scale := total / maxEnd

	sorted := make([]Segment, 0, len(external))
	for _, s := range external {
		text := strings.TrimSpace(s.Text)
		if text == "" || math.IsNaN(s.StartTime) || math.IsNaN(s.EndTime) || math.IsInf(s.EndTime, 0) {
			continue
		}
		start := math.Max(0, s.StartTime) * scale
		end := math.Max(0, s.EndTime) * scale
		sorted = append(sorted, Segment{Text: text, StartTime: start, EndTime: end})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	out := make([]Segment, 0, len(sorted))
	for _, s := range sorted {
		if s.EndTime > total {
			s.EndTime = total
		}
		if len(out) > 0 {
			prev := &out[len(out)-1]
			if s.StartTime < prev.EndTime {
				s.StartTime = prev.EndTime
			}
			// Fully covered by the previous window: keep the words, not the window.
			if s.EndTime <= s.StartTime {
				prev.Text = joinText(prev.Text, s.Text)
				continue
			}
		} else if s.EndTime <= s.StartTime {
			s.EndTime = math.Min(total, s.StartTime+minWindow(total))
			if s.EndTime <= s.StartTime {
				s.StartTime = math.Max(0, s.EndTime-minWindow(total))
			}
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	out[len(out)-1].EndTime = total
	return out
}

// minWindow is the width given to a zero-length first timestamp.
func minWindow(total float64) float64 {
	return math.Min(0.1, total)
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

// runeLen is a small helper shared by the word grouping code.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
