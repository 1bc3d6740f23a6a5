package audiosource

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWithinLimit(t *testing.T) {
	dir := t.TempDir()
	f, err := Save(strings.NewReader("abc"), dir, ".wav", 10)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if f.Size != 3 || filepath.Ext(f.Name) != ".wav" || filepath.Dir(f.Path) != dir {
		t.Fatalf("unexpected file %+v", f)
	}
	data, _ := os.ReadFile(f.Path)
	if string(data) != "abc" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestSaveTooLarge(t *testing.T) {
	dir := t.TempDir()
	_, err := Save(bytes.NewReader(make([]byte, 11)), dir, ".mp3", 10)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("partial file left behind: %v", entries)
	}
}

func TestFetchResolvesEpisodePage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/audio.m4a", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mp4")
		w.Write([]byte("m4a-bytes"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	page := `<meta property="og:audio" content="` + srv.URL + `/audio.m4a">`
	r := NewResolver(1 << 20)
	// Route the stand.fm host to the page body through a custom transport.
	r.HTTPClient = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host == "stand.fm" {
			rec := httptest.NewRecorder()
			rec.WriteString(page)
			resp := rec.Result()
			resp.Request = req
			return resp, nil
		}
		return http.DefaultTransport.RoundTrip(req)
	})}

	f, err := r.Fetch(context.Background(), "https://stand.fm/episodes/1", t.TempDir())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if f.Size != int64(len("m4a-bytes")) || filepath.Ext(f.Name) != ".m4a" || f.OriginalURL != "https://stand.fm/episodes/1" {
		t.Fatalf("unexpected file %+v", f)
	}
}

func TestResolveEpisodeWithoutAudio(t *testing.T) {
	r := NewResolver(0)
	r.HTTPClient = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		rec.WriteString("<html></html>")
		resp := rec.Result()
		resp.Request = req
		return resp, nil
	})}
	if _, err := r.Resolve(context.Background(), "https://stand.fm/episodes/2"); !errors.Is(err, ErrAudioNotFound) {
		t.Fatalf("expected ErrAudioNotFound, got %v", err)
	}
}

func TestDownloadRejectsLargeContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 64))
	}))
	defer srv.Close()

	r := NewResolver(16)
	if _, err := r.Download(context.Background(), srv.URL+"/big.mp3", t.TempDir()); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct{ ct, url, want string }{
		{"audio/mpeg", "https://x/a", ".mp3"},
		{"audio/mp4; codecs=mp4a", "https://x/a", ".m4a"},
		{"application/octet-stream", "https://x/a.ogg?sig=1", ".ogg"},
		{"", "https://x/a", ".mp3"},
	}
	for _, tt := range tests {
		if got := extensionFor(tt.ct, tt.url); got != tt.want {
			t.Errorf("extensionFor(%q, %q) = %q, want %q", tt.ct, tt.url, got, tt.want)
		}
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
