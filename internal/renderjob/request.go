// Package renderjob defines the payload of a video render job as it travels
// from the gateway through the job table to the render worker.
package renderjob

import (
	"fmt"

	"github.com/kenaxel/standfm2movie/internal/captions"
	"github.com/kenaxel/standfm2movie/internal/timeline"
)

// JobType is stored in video_job_statuses.job_type.
const JobType = "RENDER_VIDEO"

// Job statuses as stored in video_job_statuses.status.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Request is the input_payload of a render job.
type Request struct {
	Audio AudioInput `json:"audio" validate:"required"`
	// Transcript skips transcription when set.
	Transcript string `json:"transcript,omitempty"`
	// Segments are optional sentence timestamps for Transcript, one caption each.
	Segments []captions.Segment `json:"segments,omitempty"`
	Title    string             `json:"title,omitempty" validate:"max=200"`
	// Keywords override the ones extracted from the transcript.
	Keywords     []string         `json:"keywords,omitempty" validate:"max=10"`
	CustomAssets []timeline.Asset `json:"customAssets,omitempty"`
	Settings     VideoSettings    `json:"settings"`
	UserID       string           `json:"userId,omitempty"`
	ProjectID    string           `json:"projectId,omitempty"`
}

// Validate checks invariants the struct tags cannot express.
func (r Request) Validate() error {
	if err := r.Audio.Validate(); err != nil {
		return err
	}
	for i, a := range r.CustomAssets {
		if a.Type != timeline.AssetImage && a.Type != timeline.AssetVideo {
			return fmt.Errorf("customAssets[%d]: unknown type %q", i, a.Type)
		}
		if a.URL == "" {
			return fmt.Errorf("customAssets[%d]: url is required", i)
		}
	}
	return nil
}

// Result is the output_details of a finished render job.
type Result struct {
	OutputFile      string   `json:"output_file"`
	VideoURL        string   `json:"video_url"`
	Duration        float64  `json:"duration"`
	DurationSource  string   `json:"duration_source"`
	CaptionCount    int      `json:"caption_count"`
	TimelineEntries int      `json:"timeline_entries"`
	Keywords        []string `json:"keywords,omitempty"`
}
