package store

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	supa "github.com/supabase-community/supabase-go"
)

type recorded struct {
	method string
	path   string
	query  map[string]string
	body   []byte
}

func newTestStore(t *testing.T, respond func(r recorded) (int, string)) (*Supabase, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		q := map[string]string{}
		for k, v := range r.URL.Query() {
			q[k] = v[0]
		}
		rec := recorded{method: r.Method, path: r.URL.Path, query: q, body: body}
		calls = append(calls, rec)
		status, out := respond(rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, out)
	}))
	t.Cleanup(srv.Close)

	client, err := supa.NewClient(srv.URL, "service-key", nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return New(client), &calls
}

func TestCreateJobInsertsPendingRow(t *testing.T) {
	s, calls := newTestStore(t, func(r recorded) (int, string) {
		return http.StatusCreated, "[" + string(r.body) + "]"
	})

	id, err := s.CreateJob("RENDER_VIDEO", map[string]string{"title": "t"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if id == "" {
		t.Fatal("empty job id")
	}

	c := (*calls)[0]
	if c.method != http.MethodPost || c.path != "/rest/v1/video_job_statuses" {
		t.Fatalf("unexpected call %s %s", c.method, c.path)
	}
	var row map[string]interface{}
	if err := json.Unmarshal(c.body, &row); err != nil {
		t.Fatalf("body: %v", err)
	}
	if row["status"] != "PENDING" || row["job_type"] != "RENDER_VIDEO" || row["job_id"] != id {
		t.Fatalf("unexpected row %v", row)
	}
}

func TestGetJobNotFound(t *testing.T) {
	s, calls := newTestStore(t, func(recorded) (int, string) { return http.StatusOK, "[]" })

	if _, err := s.GetJob("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if got := (*calls)[0].query["job_id"]; got != "eq.missing" {
		t.Fatalf("job_id filter = %q", got)
	}
}

func TestGetJobPropagatesPostgrestError(t *testing.T) {
	s, _ := newTestStore(t, func(recorded) (int, string) {
		return http.StatusBadRequest, `{"code":"22P02","message":"invalid input syntax"}`
	})

	_, err := s.GetJob("x")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want query error", err)
	}
}

func TestListProjectsFiltersByUser(t *testing.T) {
	s, calls := newTestStore(t, func(recorded) (int, string) {
		return http.StatusOK, `[{"id":"p1","user_id":"u1","title":"first","status":"draft","created_at":"2024-01-02T00:00:00Z","updated_at":"2024-01-02T00:00:00Z"}]`
	})

	projects, err := s.ListProjects("u1", 0)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "first" {
		t.Fatalf("projects = %+v", projects)
	}

	q := (*calls)[0].query
	if q["user_id"] != "eq.u1" {
		t.Fatalf("user_id filter = %q", q["user_id"])
	}
	if q["limit"] != "20" {
		t.Fatalf("limit = %q, want default 20", q["limit"])
	}
	if q["order"] != "created_at.desc.nullslast" {
		t.Fatalf("order = %q", q["order"])
	}
}

func TestUpdateProjectStatus(t *testing.T) {
	s, calls := newTestStore(t, func(r recorded) (int, string) {
		return http.StatusOK, `[{"id":"p1","status":"processing"}]`
	})

	if err := s.UpdateProjectStatus("p1", "processing", ""); err != nil {
		t.Fatalf("UpdateProjectStatus: %v", err)
	}
	c := (*calls)[0]
	if c.method != http.MethodPatch || c.query["id"] != "eq.p1" {
		t.Fatalf("unexpected call %s %v", c.method, c.query)
	}
	var body map[string]interface{}
	_ = json.Unmarshal(c.body, &body)
	if body["status"] != "processing" {
		t.Fatalf("body = %v", body)
	}
	if _, ok := body["video_url"]; ok {
		t.Fatal("video_url must be omitted when empty")
	}
}

func TestIncrementAPICalls(t *testing.T) {
	s, calls := newTestStore(t, func(r recorded) (int, string) {
		if r.method == http.MethodGet {
			return http.StatusOK, `[{"user_id":"u1","videos_generated":2,"total_duration":90.5,"api_calls":7}]`
		}
		return http.StatusNoContent, ""
	})

	if err := s.IncrementAPICalls("u1"); err != nil {
		t.Fatalf("IncrementAPICalls: %v", err)
	}
	if len(*calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(*calls))
	}
	var body map[string]float64
	_ = json.Unmarshal((*calls)[1].body, &body)
	if body["api_calls"] != 8 {
		t.Fatalf("api_calls = %v, want 8", body["api_calls"])
	}
}
