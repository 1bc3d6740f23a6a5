package assemblyai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kenaxel/standfm2movie/internal/poll"
)

func newTestServer(t *testing.T, statuses []string) (*httptest.Server, *int) {
	t.Helper()
	polls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("authorization") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "audio-bytes" {
			t.Errorf("unexpected upload body %q", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn/upload/1"})
	})
	mux.HandleFunc("/transcript", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["audio_url"] != "https://cdn/upload/1" || req["language_code"] != "ja" {
			t.Errorf("unexpected submit body %v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "tr_1", "status": StatusQueued})
	})
	mux.HandleFunc("/transcript/tr_1", func(w http.ResponseWriter, r *http.Request) {
		status := statuses[len(statuses)-1]
		if polls < len(statuses) {
			status = statuses[polls]
		}
		polls++
		resp := Transcript{ID: "tr_1", Status: status}
		if status == StatusCompleted {
			resp.Text = "こんにちは。"
			resp.AudioDuration = 3.2
			resp.Words = []Word{{Text: "こんにちは。", Start: 120, End: 1480}}
		}
		if status == StatusError {
			resp.Error = "bad audio"
		}
		json.NewEncoder(w).Encode(resp)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &polls
}

func testClient(url string, attempts int) *Client {
	c := NewClient("key")
	c.BaseURL = url
	c.Poller = poll.New(time.Millisecond, attempts)
	return c
}

func writeAudio(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "a.mp3")
	if err := os.WriteFile(p, []byte("audio-bytes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestTranscribeFile(t *testing.T) {
	srv, polls := newTestServer(t, []string{StatusQueued, StatusProcessing, StatusCompleted})
	res, err := testClient(srv.URL, 10).TranscribeFile(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("TranscribeFile() error = %v", err)
	}
	if *polls != 3 {
		t.Fatalf("expected 3 polls, got %d", *polls)
	}
	if res.Text != "こんにちは。" || res.Duration != 3.2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Words) != 1 || res.Words[0].StartTime != 0.12 || res.Words[0].EndTime != 1.48 {
		t.Fatalf("word timings not converted to seconds: %+v", res.Words)
	}
}

func TestTranscribeFileTimesOut(t *testing.T) {
	srv, polls := newTestServer(t, []string{StatusProcessing})
	_, err := testClient(srv.URL, 4).TranscribeFile(context.Background(), writeAudio(t))
	if !errors.Is(err, poll.ErrTimedOut) {
		t.Fatalf("expected ErrTimedOut, got %v", err)
	}
	if *polls != 4 {
		t.Fatalf("expected 4 polls, got %d", *polls)
	}
}

func TestTranscribeFileRemoteError(t *testing.T) {
	srv, _ := newTestServer(t, []string{StatusError})
	_, err := testClient(srv.URL, 4).TranscribeFile(context.Background(), writeAudio(t))
	if !errors.Is(err, poll.ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
}

func TestUnauthorizedAndMissingKey(t *testing.T) {
	srv, _ := newTestServer(t, []string{StatusCompleted})
	c := testClient(srv.URL, 1)
	c.APIKey = "wrong"
	if _, err := c.TranscribeFile(context.Background(), writeAudio(t)); err == nil {
		t.Fatalf("expected upload to fail with a bad key")
	}
	c.APIKey = ""
	if _, err := c.TranscribeFile(context.Background(), writeAudio(t)); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}
