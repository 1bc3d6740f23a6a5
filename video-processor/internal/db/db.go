package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	postgrest "github.com/supabase-community/postgrest-go"
)

// VideoJobStatus maps to the video_job_statuses table in Supabase.
// Pointers are used for nullable columns and json.RawMessage for JSONB.
type VideoJobStatus struct {
	JobID         string          `json:"job_id"`
	JobType       string          `json:"job_type"`
	Status        string          `json:"status"` // PENDING, PROCESSING, COMPLETED, FAILED
	InputPayload  json.RawMessage `json:"input_payload,omitempty"`
	OutputDetails json.RawMessage `json:"output_details,omitempty"`
	ErrorMessage  *string         `json:"error_message,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

type userUsage struct {
	UserID          string  `json:"user_id"`
	VideosGenerated int     `json:"videos_generated"`
	TotalDuration   float64 `json:"total_duration"`
}

const (
	jobStatusTable = "video_job_statuses"
	projectTable   = "video_projects"
	usageTable     = "user_usage"
)

// Job statuses shared with the gateway.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// ErrNotConfigured is returned by New when the Supabase settings are missing.
var ErrNotConfigured = errors.New("SUPABASE_URL and SUPABASE_SERVICE_KEY must be set")

// Store reads and updates the job table and the rows a render touches.
type Store struct {
	client *postgrest.Client
	now    func() time.Time
}

// New initializes the PostgREST client for the Supabase project at url.
func New(url, serviceKey string) (*Store, error) {
	if url == "" || serviceKey == "" {
		return nil, ErrNotConfigured
	}

	client := postgrest.NewClient(url+"/rest/v1", "", map[string]string{
		"apikey":        serviceKey,
		"Authorization": fmt.Sprintf("Bearer %s", serviceKey),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to initialize Supabase client: %w", client.ClientError)
	}
	return &Store{client: client, now: time.Now}, nil
}

// ListPending returns up to limit PENDING jobs of jobType, oldest first.
func (s *Store) ListPending(jobType string, limit int) ([]VideoJobStatus, error) {
	var jobs []VideoJobStatus
	_, err := s.client.From(jobStatusTable).
		Select("*", "", false).
		Eq("job_type", jobType).
		Eq("status", StatusPending).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Limit(limit, "").
		ExecuteTo(&jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending jobs: %w", err)
	}
	return jobs, nil
}

// Claim moves a job from PENDING to PROCESSING. It reports false when another
// processor claimed the job first.
func (s *Store) Claim(jobID string) (bool, error) {
	updateData := map[string]interface{}{
		"status":     StatusProcessing,
		"updated_at": s.now().UTC(),
	}

	var results []VideoJobStatus
	_, err := s.client.From(jobStatusTable).
		Update(updateData, "representation", "").
		Eq("job_id", jobID).
		Eq("status", StatusPending).
		ExecuteTo(&results)
	if err != nil {
		return false, fmt.Errorf("failed to claim job %s: %w", jobID, err)
	}
	return len(results) > 0, nil
}

// Release hands a claimed job back to the queue.
func (s *Store) Release(jobID string) error {
	updateData := map[string]interface{}{
		"status":     StatusPending,
		"updated_at": s.now().UTC(),
	}
	_, _, err := s.client.From(jobStatusTable).
		Update(updateData, "minimal", "").
		Eq("job_id", jobID).
		Eq("status", StatusProcessing).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to release job %s: %w", jobID, err)
	}
	return nil
}

// ClaimPending lists pending jobs and claims as many as it can, up to limit.
func (s *Store) ClaimPending(jobType string, limit int) ([]VideoJobStatus, error) {
	if limit <= 0 {
		return nil, nil
	}
	candidates, err := s.ListPending(jobType, limit)
	if err != nil {
		return nil, err
	}

	claimed := make([]VideoJobStatus, 0, len(candidates))
	for _, job := range candidates {
		ok, err := s.Claim(job.JobID)
		if err != nil {
			return claimed, err
		}
		if ok {
			job.Status = StatusProcessing
			claimed = append(claimed, job)
		}
	}
	return claimed, nil
}

// UpdateJobStatus updates the status, output details, and error message of an existing job record.
func (s *Store) UpdateJobStatus(jobID string, status string, outputDetails interface{}, errorMessage string) error {
	updateData := make(map[string]interface{})
	updateData["status"] = status
	updateData["updated_at"] = s.now().UTC()

	if outputDetails != nil {
		outputBytes, err := json.Marshal(outputDetails)
		if err != nil {
			return fmt.Errorf("failed to marshal output details: %w", err)
		}
		updateData["output_details"] = json.RawMessage(outputBytes)
	}
	if errorMessage != "" {
		updateData["error_message"] = errorMessage
	}

	_, _, err := s.client.From(jobStatusTable).Update(updateData, "minimal", "").Eq("job_id", jobID).Execute()
	if err != nil {
		return fmt.Errorf("failed to update job record %s: %w", jobID, err)
	}
	return nil
}

// UpdateProjectStatus sets a video project's status and, when given, its video URL.
func (s *Store) UpdateProjectStatus(projectID, status, videoURL string) error {
	updateData := map[string]interface{}{
		"status":     status,
		"updated_at": s.now().UTC(),
	}
	if videoURL != "" {
		updateData["video_url"] = videoURL
	}
	_, _, err := s.client.From(projectTable).Update(updateData, "minimal", "").Eq("id", projectID).Execute()
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", projectID, err)
	}
	return nil
}

// RecordVideo adds one generated video of the given length to a user's usage row.
func (s *Store) RecordVideo(userID string, seconds float64) error {
	var rows []userUsage
	_, err := s.client.From(usageTable).Select("*", "", false).Eq("user_id", userID).ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("failed to read usage of %s: %w", userID, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no usage row for user %s", userID)
	}

	updateData := map[string]interface{}{
		"videos_generated": rows[0].VideosGenerated + 1,
		"total_duration":   rows[0].TotalDuration + seconds,
	}
	_, _, err = s.client.From(usageTable).Update(updateData, "minimal", "").Eq("user_id", userID).Execute()
	if err != nil {
		return fmt.Errorf("failed to update usage of %s: %w", userID, err)
	}
	return nil
}
