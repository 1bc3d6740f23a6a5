// Package store reads and writes the gateway's Supabase tables.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/kenaxel/standfm2movie/api-gateway/models"
	"github.com/kenaxel/standfm2movie/internal/renderjob"
)

const (
	jobStatusTable = "video_job_statuses"
	projectTable   = "video_projects"
	usageTable     = "user_usage"

	// DefaultProjectLimit bounds ListProjects when no limit is given.
	DefaultProjectLimit = 20
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// Supabase implements the handler store on top of supabase-go.
type Supabase struct {
	client *supa.Client
	now    func() time.Time
}

func New(client *supa.Client) *Supabase {
	return &Supabase{client: client, now: time.Now}
}

// CreateJob inserts a PENDING job row and returns its generated id.
func (s *Supabase) CreateJob(jobType string, payload interface{}) (string, error) {
	jobID := uuid.NewString()

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal input payload: %w", err)
	}

	record := models.VideoJobStatus{
		JobID:        jobID,
		JobType:      jobType,
		Status:       renderjob.StatusPending,
		InputPayload: payloadBytes,
	}

	var results []models.VideoJobStatus
	body, _, err := s.client.From(jobStatusTable).
		Insert(record, false, "", "representation", "").
		Execute()
	if err != nil {
		return "", fmt.Errorf("failed to insert job record: %w", err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("failed to decode inserted job record: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no record returned after insert, job_id: %s", jobID)
	}
	return jobID, nil
}

// GetJob returns one row of video_job_statuses.
func (s *Supabase) GetJob(jobID string) (*models.VideoJobStatus, error) {
	var jobs []models.VideoJobStatus
	if err := s.selectInto(jobStatusTable, "job_id", jobID, &jobs); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, ErrNotFound
	}
	return &jobs[0], nil
}

// ListProjects returns the newest projects of a user.
func (s *Supabase) ListProjects(userID string, limit int) ([]models.VideoProject, error) {
	if limit <= 0 {
		limit = DefaultProjectLimit
	}
	body, _, err := s.client.From(projectTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("could not list projects: %w", err)
	}

	projects := []models.VideoProject{}
	if err := json.Unmarshal(body, &projects); err != nil {
		return nil, fmt.Errorf("could not decode projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one video project.
func (s *Supabase) GetProject(id string) (*models.VideoProject, error) {
	var projects []models.VideoProject
	if err := s.selectInto(projectTable, "id", id, &projects); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, ErrNotFound
	}
	return &projects[0], nil
}

// UpdateProjectStatus sets the status of a project, and its video URL when given.
func (s *Supabase) UpdateProjectStatus(id, status, videoURL string) error {
	update := map[string]interface{}{
		"status":     status,
		"updated_at": s.now().UTC(),
	}
	if videoURL != "" {
		update["video_url"] = videoURL
	}

	body, _, err := s.client.From(projectTable).
		Update(update, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("could not update project %s: %w", id, err)
	}

	var updated []models.VideoProject
	if err := json.Unmarshal(body, &updated); err != nil {
		return fmt.Errorf("could not decode updated project %s: %w", id, err)
	}
	if len(updated) == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUsage returns the usage counters of a user.
func (s *Supabase) GetUsage(userID string) (*models.UserUsage, error) {
	var usage []models.UserUsage
	if err := s.selectInto(usageTable, "user_id", userID, &usage); err != nil {
		return nil, err
	}
	if len(usage) == 0 {
		return nil, ErrNotFound
	}
	return &usage[0], nil
}

// IncrementAPICalls bumps user_usage.api_calls by one.
func (s *Supabase) IncrementAPICalls(userID string) error {
	usage, err := s.GetUsage(userID)
	if err != nil {
		return err
	}
	_, _, err = s.client.From(usageTable).
		Update(map[string]interface{}{"api_calls": usage.APICalls + 1}, "minimal", "").
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("could not update usage of %s: %w", userID, err)
	}
	return nil
}

func (s *Supabase) selectInto(table, column, value string, dest interface{}) error {
	body, _, err := s.client.From(table).
		Select("*", "", false).
		Eq(column, value).
		Limit(1, "").
		Execute()
	if err != nil {
		return fmt.Errorf("could not query %s: %w", table, err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("could not decode %s row (%d bytes): %w", table, len(body), err)
	}
	return nil
}
