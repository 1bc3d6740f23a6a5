package models

import "github.com/kenaxel/standfm2movie/internal/captions"

// TranscriptionResponse is returned by POST /transcribe.
type TranscriptionResponse struct {
	Transcript     string             `json:"transcript"`
	Duration       float64            `json:"duration"`
	DurationSource string             `json:"durationSource"`
	Segments       []captions.Segment `json:"segments"`
	Language       string             `json:"language,omitempty"`
}
