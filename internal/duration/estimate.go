// Package duration derives a usable total duration for an audio source.
package duration

import "math"

const (
	DefaultBytesPerMinute = 1 << 20
	DefaultMinSeconds     = 10.0
	DefaultMaxSeconds     = 300.0
	DefaultSeconds        = 60.0
)

// Config tunes the size based estimate. Non-positive fields use the defaults.
type Config struct {
	BytesPerMinute int64
	MinSeconds     float64
	MaxSeconds     float64
	DefaultSeconds float64
}

// DefaultConfig returns the stock estimator settings.
func DefaultConfig() Config {
	return Config{
		BytesPerMinute: DefaultBytesPerMinute,
		MinSeconds:     DefaultMinSeconds,
		MaxSeconds:     DefaultMaxSeconds,
		DefaultSeconds: DefaultSeconds,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.BytesPerMinute <= 0 {
		c.BytesPerMinute = d.BytesPerMinute
	}
	if !(c.MinSeconds > 0) {
		c.MinSeconds = d.MinSeconds
	}
	if !(c.MaxSeconds > 0) || c.MaxSeconds < c.MinSeconds {
		c.MaxSeconds = math.Max(d.MaxSeconds, c.MinSeconds)
	}
	if !(c.DefaultSeconds > 0) {
		c.DefaultSeconds = d.DefaultSeconds
	}
	return c
}

// Input carries whatever is known about the audio.
type Input struct {
	// Authoritative is a measured duration (probe or transcription service).
	Authoritative float64
	// FileSizeBytes is the encoded size of the audio.
	FileSizeBytes int64
}

// Source tells which branch produced an estimate.
type Source string

const (
	SourceAuthoritative Source = "authoritative"
	SourceFileSize      Source = "file_size"
	SourceDefault       Source = "default"
)

// Estimate returns a positive duration in seconds. A measured duration is
// passed through. Otherwise the file size is converted at a fixed bitrate and
// clamped, and with nothing known the configured default is used.
func Estimate(in Input, cfg Config) float64 {
	seconds, _ := EstimateWithSource(in, cfg)
	return seconds
}

// EstimateWithSource is Estimate that also reports which branch was taken.
func EstimateWithSource(in Input, cfg Config) (float64, Source) {
	cfg = cfg.normalized()
	if in.Authoritative > 0 && !math.IsInf(in.Authoritative, 0) {
		return in.Authoritative, SourceAuthoritative
	}
	if in.FileSizeBytes > 0 {
		seconds := float64(in.FileSizeBytes) / float64(cfg.BytesPerMinute) * 60
		return math.Min(math.Max(seconds, cfg.MinSeconds), cfg.MaxSeconds), SourceFileSize
	}
	return cfg.DefaultSeconds, SourceDefault
}
