package models

import (
	"encoding/json"
	"time"
)

// VideoJobStatus is a row of video_job_statuses, shared with the video processor.
type VideoJobStatus struct {
	JobID         string          `json:"job_id"`
	JobType       string          `json:"job_type"`
	Status        string          `json:"status"`
	InputPayload  json.RawMessage `json:"input_payload,omitempty"`
	OutputDetails json.RawMessage `json:"output_details,omitempty"`
	ErrorMessage  *string         `json:"error_message,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// JobStatusView is what GET /jobs/:jobId returns. ErrorCode is split off the
// stored "<CODE>: detail" message.
type JobStatusView struct {
	JobID        string          `json:"jobId"`
	Status       string          `json:"status"`
	Output       json.RawMessage `json:"output,omitempty"`
	ErrorCode    string          `json:"errorCode,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}
