package captions

import "sort"

// Merge coalesces captions that would flash by too quickly. A segment is folded
// into the one being built when it is shorter than minDuration, when it starts
// less than minGap after the current one ends, or when the current one itself
// is still shorter than minDuration. Text is joined with a single space and the
// last segment is always kept, so no words are ever lost.
func Merge(segments []Segment, minDuration, minGap float64) []Segment {
	return MergeWithLimit(segments, minDuration, minGap, 0)
}

// MergeWithLimit is Merge with an upper bound on how long an already readable
// caption may grow. maxDuration <= 0 means no bound.
func MergeWithLimit(segments []Segment, minDuration, minGap, maxDuration float64) []Segment {
	if len(segments) == 0 {
		return nil
	}
	if minDuration < 0 {
		minDuration = 0
	}

	ordered := make([]Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime < ordered[j].StartTime
	})

	out := make([]Segment, 0, len(ordered))
	current := ordered[0]
	for _, candidate := range ordered[1:] {
		gap := candidate.StartTime - current.EndTime
		currentShort := current.Duration() < minDuration
		eligible := candidate.Duration() < minDuration || gap < minGap

		mergedEnd := current.EndTime
		if candidate.EndTime > mergedEnd {
			mergedEnd = candidate.EndTime
		}
		withinLimit := maxDuration <= 0 || mergedEnd-current.StartTime <= maxDuration

		// Overlapping windows are always folded so the output never overlaps.
		if currentShort || gap < 0 || (eligible && withinLimit) {
			current.Text = joinText(current.Text, candidate.Text)
			current.EndTime = mergedEnd
			continue
		}
		out = append(out, current)
		current = candidate
	}
	return append(out, current)
}
