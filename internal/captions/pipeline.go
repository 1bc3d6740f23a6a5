package captions

// Build runs the whole caption pipeline: split, allocate and merge.
// external may be nil; when it holds sentence-level timestamps they drive the
// timing instead of the text length, one caption window per timestamp.
func Build(text string, total float64, external []Segment, cfg Config) []Segment {
	cfg = cfg.normalized()
	return build(text, total, external, cfg)
}

// BuildFromWords is Build for word-level recogniser output. The words are
// first grouped into phrase-sized windows so captions do not flash one word
// at a time.
func BuildFromWords(text string, total float64, words []Segment, cfg Config) []Segment {
	cfg = cfg.normalized()
	return build(text, total, GroupWords(words, cfg), cfg)
}

func build(text string, total float64, external []Segment, cfg Config) []Segment {
	allocated := Allocate(Split(text, cfg), total, external, cfg)
	return MergeWithLimit(allocated, cfg.MinDuration, cfg.MinGap, cfg.MaxCaptionSeconds)
}
