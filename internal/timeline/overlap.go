package timeline

// ResolveOverlaps clips already ordered entries so none overlaps its
// predecessor. An entry whose start is pulled past its own end is dropped
// because an earlier entry fully covers it.
//
// It is the standalone variant for windows that are already sorted, such as
// a hand-edited timeline. Build does not call it: Build pushes a late asset
// back by its own length instead of clipping its start, so its output is
// always a fixed point of ResolveOverlaps.
func ResolveOverlaps(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	lastEnd := 0.0
	for _, e := range entries {
		if len(out) > 0 && e.StartTime < lastEnd {
			e.StartTime = lastEnd
		}
		if e.EndTime <= e.StartTime {
			continue
		}
		out = append(out, e)
		lastEnd = e.EndTime
	}
	return out
}
