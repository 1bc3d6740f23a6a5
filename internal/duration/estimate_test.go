package duration

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		want   float64
		source Source
	}{
		{"authoritative wins", Input{Authoritative: 123.4, FileSizeBytes: 5 << 20}, 123.4, SourceAuthoritative},
		{"one mebibyte is a minute", Input{FileSizeBytes: 1 << 20}, 60, SourceFileSize},
		{"half a mebibyte", Input{FileSizeBytes: 1 << 19}, 30, SourceFileSize},
		{"tiny file clamps to min", Input{FileSizeBytes: 100}, DefaultMinSeconds, SourceFileSize},
		{"huge file clamps to max", Input{FileSizeBytes: 50 << 20}, DefaultMaxSeconds, SourceFileSize},
		{"nothing known", Input{}, DefaultSeconds, SourceDefault},
		{"negative authoritative ignored", Input{Authoritative: -5}, DefaultSeconds, SourceDefault},
		{"nan authoritative ignored", Input{Authoritative: math.NaN(), FileSizeBytes: 1 << 20}, 60, SourceFileSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := EstimateWithSource(tt.in, DefaultConfig())
			if math.Abs(got-tt.want) > 1e-9 || source != tt.source {
				t.Fatalf("EstimateWithSource(%+v) = %v (%s), want %v (%s)", tt.in, got, source, tt.want, tt.source)
			}
		})
	}
}

func TestEstimateZeroConfigUsesDefaults(t *testing.T) {
	if got := Estimate(Input{}, Config{}); got != DefaultSeconds {
		t.Fatalf("Estimate with zero config = %v", got)
	}
	if got := Estimate(Input{FileSizeBytes: 2 << 20}, Config{BytesPerMinute: -1}); got != 120 {
		t.Fatalf("Estimate with invalid bitrate = %v", got)
	}
}

func TestEstimateAlwaysPositive(t *testing.T) {
	cfg := Config{BytesPerMinute: 1, MinSeconds: -3, MaxSeconds: -1, DefaultSeconds: 0}
	for _, in := range []Input{{}, {FileSizeBytes: 1}, {FileSizeBytes: 1 << 40}, {Authoritative: 0.001}} {
		if got := Estimate(in, cfg); !(got > 0) {
			t.Fatalf("Estimate(%+v) = %v", in, got)
		}
	}
}
