package models

import (
	"encoding/json"
	"time"
)

// Video project statuses.
const (
	ProjectDraft      = "draft"
	ProjectProcessing = "processing"
	ProjectCompleted  = "completed"
	ProjectFailed     = "failed"
)

// VideoProject represents a row of video_projects.
type VideoProject struct {
	ID           string          `json:"id,omitempty"`
	UserID       string          `json:"user_id"`
	Title        string          `json:"title"`
	Description  *string         `json:"description,omitempty"`
	AudioURL     *string         `json:"audio_url,omitempty"`
	VideoURL     *string         `json:"video_url,omitempty"`
	ThumbnailURL *string         `json:"thumbnail_url,omitempty"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	Transcript   json.RawMessage `json:"transcript,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// UserUsage represents a row of user_usage.
type UserUsage struct {
	ID              string     `json:"id,omitempty"`
	UserID          string     `json:"user_id"`
	VideosGenerated int        `json:"videos_generated"`
	TotalDuration   float64    `json:"total_duration"`
	APICalls        int        `json:"api_calls"`
	LastReset       *time.Time `json:"last_reset,omitempty"`
}
