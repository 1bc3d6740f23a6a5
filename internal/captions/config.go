package captions

// Weighting selects how the proportional allocator shares the total duration.
type Weighting int

const (
	// WeightByLength gives longer units proportionally more time.
	WeightByLength Weighting = iota
	// WeightEqual gives every unit the same share.
	WeightEqual
)

// Default tunables. They were calibrated by eye against short spoken-word clips
// and are meant to be overridden through Config.
const (
	DefaultMinDuration       = 1.0
	DefaultMinGap            = 0.3
	DefaultCJKChunkChars     = 10
	DefaultLatinChunkWords   = 4
	DefaultCJKThreshold      = 0.3
	DefaultMinUnitSeconds    = 2.0
	DefaultMaxUnitSeconds    = 10.0
	DefaultMinTotalSeconds   = 1.0
	DefaultMaxCaptionSeconds = 6.0
	DefaultPlaceholder       = "..."
)

// Config holds every knob of the caption pipeline.
type Config struct {
	// MinDuration is the shortest on-screen time a caption may have before it
	// gets merged with its neighbour.
	MinDuration float64
	// MinGap is the smallest pause between two captions that keeps them apart.
	MinGap float64
	// MaxCaptionSeconds caps how long merging may grow a caption. Zero disables the cap.
	MaxCaptionSeconds float64

	CJKChunkChars   int
	LatinChunkWords int
	// CJKThreshold is the share of CJK runes among letters above which text is
	// split as Japanese/Chinese.
	CJKThreshold float64

	MinUnitSeconds  float64
	MaxUnitSeconds  float64
	MinTotalSeconds float64
	Weighting       Weighting

	// Placeholder is shown for the whole duration when there is no transcript.
	Placeholder string
}

// DefaultConfig returns the stock caption settings.
func DefaultConfig() Config {
	return Config{
		MinDuration:       DefaultMinDuration,
		MinGap:            DefaultMinGap,
		MaxCaptionSeconds: DefaultMaxCaptionSeconds,
		CJKChunkChars:     DefaultCJKChunkChars,
		LatinChunkWords:   DefaultLatinChunkWords,
		CJKThreshold:      DefaultCJKThreshold,
		MinUnitSeconds:    DefaultMinUnitSeconds,
		MaxUnitSeconds:    DefaultMaxUnitSeconds,
		MinTotalSeconds:   DefaultMinTotalSeconds,
		Weighting:         WeightByLength,
		Placeholder:       DefaultPlaceholder,
	}
}

// normalized replaces unusable values with the defaults. Zero merge thresholds
// are kept as given and disable the corresponding merge rule.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.MinDuration < 0 {
		c.MinDuration = d.MinDuration
	}
	if c.MinGap < 0 {
		c.MinGap = d.MinGap
	}
	if c.MaxCaptionSeconds < 0 {
		c.MaxCaptionSeconds = 0
	}
	if c.CJKChunkChars <= 0 {
		c.CJKChunkChars = d.CJKChunkChars
	}
	if c.LatinChunkWords <= 0 {
		c.LatinChunkWords = d.LatinChunkWords
	}
	if c.CJKThreshold <= 0 || c.CJKThreshold > 1 {
		c.CJKThreshold = d.CJKThreshold
	}
	if c.MinUnitSeconds <= 0 {
		c.MinUnitSeconds = d.MinUnitSeconds
	}
	if c.MaxUnitSeconds <= 0 || c.MaxUnitSeconds < c.MinUnitSeconds {
		c.MaxUnitSeconds = d.MaxUnitSeconds
		if c.MaxUnitSeconds < c.MinUnitSeconds {
			c.MaxUnitSeconds = c.MinUnitSeconds
		}
	}
	if c.MinTotalSeconds <= 0 {
		c.MinTotalSeconds = d.MinTotalSeconds
	}
	if c.Placeholder == "" {
		c.Placeholder = d.Placeholder
	}
	return c
}
