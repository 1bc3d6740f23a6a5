// Package storyboard turns a transcript and candidate visuals into the caption
// list and timeline that drive a render.
package storyboard

import (
	"github.com/kenaxel/standfm2movie/internal/captions"
	"github.com/kenaxel/standfm2movie/internal/duration"
	"github.com/kenaxel/standfm2movie/internal/timeline"
)

// DefaultSlotSeconds is the shortest time a stock visual stays on screen.
const DefaultSlotSeconds = 4.0

// Input is everything the orchestration layer knows about one render.
// ExternalTimestamps are sentence-level windows used one caption each. Words
// are word-level recogniser timings and take precedence when both are set.
type Input struct {
	RawTranscriptText     string             `json:"rawTranscriptText"`
	ExternalTimestamps    []captions.Segment `json:"externalTimestamps,omitempty"`
	Words                 []captions.Segment `json:"words,omitempty"`
	AuthoritativeDuration float64            `json:"authoritativeDuration,omitempty"`
	FileSizeBytes         int64              `json:"fileSizeBytes,omitempty"`
	CandidateAssets       []timeline.Asset   `json:"candidateAssets"`
}

// Output is what the renderer consumes.
type Output struct {
	Duration        float64            `json:"duration"`
	DurationSource  duration.Source    `json:"durationSource"`
	CaptionSegments []captions.Segment `json:"captionSegments"`
	Timeline        []timeline.Entry   `json:"timeline"`
}

// Config bundles the tunables of every stage.
type Config struct {
	Captions    captions.Config
	Duration    duration.Config
	Timeline    timeline.Options
	SlotSeconds float64
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		Captions:    captions.DefaultConfig(),
		Duration:    duration.DefaultConfig(),
		SlotSeconds: DefaultSlotSeconds,
	}
}

// Compose runs the caption and timeline pipelines against one shared total
// duration. It never fails; degenerate input yields placeholder output.
func Compose(in Input, cfg Config) Output {
	total, source := duration.EstimateWithSource(duration.Input{
		Authoritative: in.AuthoritativeDuration,
		FileSizeBytes: in.FileSizeBytes,
	}, cfg.Duration)

	var segments []captions.Segment
	if len(in.Words) > 0 {
		segments = captions.BuildFromWords(in.RawTranscriptText, total, in.Words, cfg.Captions)
	} else {
		segments = captions.Build(in.RawTranscriptText, total, in.ExternalTimestamps, cfg.Captions)
	}
	entries := timeline.Build(PlanAssets(in.CandidateAssets, total, cfg.SlotSeconds), total, cfg.Timeline)

	return Output{
		Duration:        total,
		DurationSource:  source,
		CaptionSegments: segments,
		Timeline:        entries,
	}
}

// PlanAssets gives assets without a placement window consecutive slots of
// equal length across [0, total). Slots are never shorter than slotSeconds,
// so surplus assets are left out. Assets that already carry a window are
// kept as they are.
func PlanAssets(assets []timeline.Asset, total, slotSeconds float64) []timeline.Asset {
	if slotSeconds <= 0 {
		slotSeconds = DefaultSlotSeconds
	}

	var unplaced []int
	for i, a := range assets {
		if a.EndTime <= a.StartTime {
			unplaced = append(unplaced, i)
		}
	}
	if len(unplaced) == 0 || total <= 0 {
		return assets
	}

	n := len(unplaced)
	if fit := int(total / slotSeconds); n > fit {
		n = fit
		if n == 0 {
			n = 1
		}
	}
	slot := total / float64(n)

	out := make([]timeline.Asset, 0, len(assets))
	placed := 0
	next := 0
	for i, a := range assets {
		if next < len(unplaced) && unplaced[next] == i {
			next++
			if placed >= n {
				continue
			}
			a.StartTime = float64(placed) * slot
			a.EndTime = float64(placed+1) * slot
			if placed == n-1 {
				a.EndTime = total
			}
			// Stills have no length of their own; the renderer loops short clips.
			if a.Type == timeline.AssetImage || a.Duration <= 0 || a.Duration < slot {
				a.Duration = a.EndTime - a.StartTime
			}
			placed++
		}
		out = append(out, a)
	}
	return out
}
