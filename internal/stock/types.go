// Package stock searches Pexels and Unsplash for background visuals.
package stock

import (
	"context"
	"strings"

	"github.com/kenaxel/standfm2movie/internal/timeline"
)

type Source string

const (
	SourcePexels   Source = "pexels"
	SourceUnsplash Source = "unsplash"
	SourceDalle    Source = "dalle"
)

type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
	Square    Orientation = "square"
)

// ParseOrientation maps user input to an Orientation, defaulting to Landscape.
func ParseOrientation(s string) Orientation {
	switch strings.ToLower(s) {
	case "portrait":
		return Portrait
	case "square", "squarish":
		return Square
	}
	return Landscape
}

const (
	DefaultCount = 5
	MaxCount     = 30
)

// Query is one search request.
type Query struct {
	Text        string
	Count       int
	Orientation Orientation
}

func (q Query) normalized() Query {
	q.Text = strings.TrimSpace(q.Text)
	if q.Count <= 0 {
		q.Count = DefaultCount
	}
	if q.Count > MaxCount {
		q.Count = MaxCount
	}
	if q.Orientation == "" {
		q.Orientation = Landscape
	}
	return q
}

// Result is one stock hit.
type Result struct {
	ID           string             `json:"id"`
	URL          string             `json:"url"`
	ThumbnailURL string             `json:"thumbnailUrl"`
	Type         timeline.AssetType `json:"type"`
	Source       Source             `json:"source"`
	Description  string             `json:"description"`
	Tags         []string           `json:"tags"`
	Duration     float64            `json:"duration,omitempty"`
	// Placeholder is set on the sample data returned when no API key is configured.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Asset converts the hit into an unplaced timeline asset.
func (r Result) Asset() timeline.Asset {
	return timeline.Asset{
		Type:        r.Type,
		URL:         r.URL,
		Duration:    r.Duration,
		Description: r.Description,
	}
}

// ImageSearcher finds still images.
type ImageSearcher interface {
	SearchImages(ctx context.Context, q Query) ([]Result, error)
}

// VideoSearcher finds video clips.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, q Query) ([]Result, error)
}

func configuredKey(key string) bool {
	return key != "" && !strings.HasPrefix(key, "your_")
}
