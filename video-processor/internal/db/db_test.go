package db

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type call struct {
	method string
	path   string
	query  map[string]string
	prefer string
	body   map[string]interface{}
}

func newTestStore(t *testing.T, respond func(c call) (int, string)) (*Store, *[]call) {
	t.Helper()
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		c := call{method: r.Method, path: r.URL.Path, query: map[string]string{}, prefer: r.Header.Get("Prefer")}
		for k, v := range r.URL.Query() {
			c.query[k] = v[0]
		}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &c.body)
		}
		calls = append(calls, c)
		status, out := respond(c)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, out)
	}))
	t.Cleanup(srv.Close)

	s, err := New(srv.URL, "service-key")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s, &calls
}

func TestNewRequiresSettings(t *testing.T) {
	if _, err := New("", "key"); err != ErrNotConfigured {
		t.Fatalf("err = %v", err)
	}
}

func TestClaimPendingSkipsJobsTakenElsewhere(t *testing.T) {
	s, calls := newTestStore(t, func(c call) (int, string) {
		switch {
		case c.method == http.MethodGet:
			return http.StatusOK, `[{"job_id":"a","job_type":"RENDER_VIDEO","status":"PENDING"},{"job_id":"b","job_type":"RENDER_VIDEO","status":"PENDING"}]`
		case c.query["job_id"] == "eq.a":
			return http.StatusOK, `[{"job_id":"a","status":"PROCESSING"}]`
		}
		return http.StatusOK, `[]`
	})

	jobs, err := s.ClaimPending("RENDER_VIDEO", 2)
	if err != nil {
		t.Fatalf("ClaimPending: %v", err)
	}
	if len(jobs) != 1 || jobs[0].JobID != "a" || jobs[0].Status != StatusProcessing {
		t.Fatalf("jobs = %+v", jobs)
	}

	list := (*calls)[0]
	if list.query["status"] != "eq.PENDING" || list.query["job_type"] != "eq.RENDER_VIDEO" || list.query["limit"] != "2" {
		t.Fatalf("list query = %v", list.query)
	}
	if !strings.HasPrefix(list.query["order"], "created_at.asc") {
		t.Fatalf("order = %q", list.query["order"])
	}

	claim := (*calls)[1]
	if claim.method != http.MethodPatch || claim.query["status"] != "eq.PENDING" || claim.body["status"] != StatusProcessing {
		t.Fatalf("claim call = %+v", claim)
	}
	if len(*calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(*calls))
	}
}

func TestClaimPendingZeroLimit(t *testing.T) {
	s, calls := newTestStore(t, func(call) (int, string) { return http.StatusOK, `[]` })
	jobs, err := s.ClaimPending("RENDER_VIDEO", 0)
	if err != nil || jobs != nil || len(*calls) != 0 {
		t.Fatalf("jobs = %v err = %v calls = %d", jobs, err, len(*calls))
	}
}

func TestUpdateJobStatusFailed(t *testing.T) {
	s, calls := newTestStore(t, func(call) (int, string) { return http.StatusNoContent, `` })

	if err := s.UpdateJobStatus("j1", StatusFailed, nil, "TIMEOUT: transcription timed out"); err != nil {
		t.Fatalf("UpdateJobStatus: %v", err)
	}
	c := (*calls)[0]
	if c.path != "/rest/v1/video_job_statuses" || c.query["job_id"] != "eq.j1" || c.prefer != "return=minimal" {
		t.Fatalf("call = %+v", c)
	}
	if c.body["error_message"] != "TIMEOUT: transcription timed out" || c.body["status"] != StatusFailed {
		t.Fatalf("body = %v", c.body)
	}
	if _, ok := c.body["output_details"]; ok {
		t.Fatal("output_details sent without output")
	}
}

func TestUpdateJobStatusError(t *testing.T) {
	s, _ := newTestStore(t, func(call) (int, string) {
		return http.StatusBadRequest, `{"message":"bad column"}`
	})
	if err := s.UpdateJobStatus("j1", StatusCompleted, map[string]string{"output_file": "x.mp4"}, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecordVideoAddsDuration(t *testing.T) {
	s, calls := newTestStore(t, func(c call) (int, string) {
		if c.method == http.MethodGet {
			return http.StatusOK, `[{"user_id":"u1","videos_generated":2,"total_duration":100.5}]`
		}
		return http.StatusNoContent, ``
	})

	if err := s.RecordVideo("u1", 60); err != nil {
		t.Fatalf("RecordVideo: %v", err)
	}
	patch := (*calls)[1]
	if patch.body["videos_generated"] != float64(3) || patch.body["total_duration"] != 160.5 {
		t.Fatalf("body = %v", patch.body)
	}
}

func TestUpdateProjectStatus(t *testing.T) {
	s, calls := newTestStore(t, func(call) (int, string) { return http.StatusNoContent, `` })
	if err := s.UpdateProjectStatus("p1", "completed", "/api/v1/output/j1.mp4"); err != nil {
		t.Fatal(err)
	}
	c := (*calls)[0]
	if c.path != "/rest/v1/video_projects" || c.query["id"] != "eq.p1" || c.body["video_url"] != "/api/v1/output/j1.mp4" {
		t.Fatalf("call = %+v", c)
	}
}
