package timeline

import (
	"math"
	"sort"
)

// MinTotalSeconds is used when the requested total is not positive.
const MinTotalSeconds = 1.0

// TransitionPolicy picks the transition for the index-th placed (non filler) asset.
type TransitionPolicy func(asset Asset, index int) Transition

// DefaultTransitions slides into videos and alternates fade and zoom for images.
func DefaultTransitions(asset Asset, index int) Transition {
	if asset.Type == AssetVideo {
		return TransitionSlide
	}
	if index%2 == 0 {
		return TransitionFade
	}
	return TransitionZoom
}

// Options tunes Build. The zero value is usable.
type Options struct {
	// Filler is the visual used for gaps. DefaultFiller when Type is empty.
	Filler Asset
	// Transitions assigns transition types. DefaultTransitions when nil.
	Transitions TransitionPolicy
}

// Build places assets on a timeline that exactly tiles [0, total).
//
// Assets are ordered by start time and laid end to end: an asset never starts
// before the previous one ended, its length is the shorter of its clip
// duration and its proposed window, and anything past total is clipped.
// Whatever is left uncovered at the head, between entries and at the tail is
// covered with filler entries.
func Build(assets []Asset, total float64, opts Options) []Entry {
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		total = MinTotalSeconds
	}
	filler := opts.Filler
	if filler.Type == "" {
		filler = DefaultFiller
	}
	pick := opts.Transitions
	if pick == nil {
		pick = DefaultTransitions
	}

	sorted := make([]Asset, 0, len(assets))
	for _, a := range assets {
		if finite(a.StartTime) && finite(a.EndTime) && finite(a.Duration) {
			sorted = append(sorted, a)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	var placed []Entry
	current := 0.0
	for _, a := range sorted {
		if current >= total {
			break
		}
		start := math.Max(current, a.StartTime)
		length := effectiveLength(a)
		if length <= 0 || start >= total {
			continue
		}
		end := math.Min(start+length, total)
		placed = append(placed, Entry{
			Asset:          a,
			StartTime:      start,
			EndTime:        end,
			TransitionType: pick(a, len(placed)),
		})
		current = end
	}

	return fillGaps(placed, total, filler)
}

// effectiveLength is min(duration, window). A zero duration or an empty
// window means unknown and defers to the other value.
func effectiveLength(a Asset) float64 {
	window := a.EndTime - a.StartTime
	switch {
	case a.Duration > 0 && window > 0:
		return math.Min(a.Duration, window)
	case a.Duration > 0 && a.EndTime == 0:
		return a.Duration
	case a.Duration == 0:
		return window
	}
	return 0
}

func fillGaps(placed []Entry, total float64, filler Asset) []Entry {
	out := make([]Entry, 0, len(placed)*2+1)
	cursor := 0.0
	for _, e := range placed {
		if e.StartTime > cursor {
			out = append(out, fillerEntry(filler, cursor, e.StartTime))
		}
		out = append(out, e)
		cursor = e.EndTime
	}
	if cursor < total {
		out = append(out, fillerEntry(filler, cursor, total))
	}
	return out
}

func fillerEntry(filler Asset, start, end float64) Entry {
	f := filler
	f.StartTime = start
	f.EndTime = end
	f.Duration = end - start
	return Entry{
		Asset:          f,
		StartTime:      start,
		EndTime:        end,
		TransitionType: TransitionFade,
		Filler:         true,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
