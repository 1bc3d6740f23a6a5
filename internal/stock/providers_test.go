package stock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kenaxel/standfm2movie/internal/timeline"
)

func TestPexelsSearchImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" || r.Header.Get("Authorization") != "pk" {
			t.Errorf("unexpected request %s auth=%q", r.URL.Path, r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("query") != "coffee" || r.URL.Query().Get("per_page") != "2" || r.URL.Query().Get("orientation") != "portrait" {
			t.Errorf("unexpected params %v", r.URL.Query())
		}
		w.Write([]byte(`{"photos":[{"id":11,"alt":"a cup","src":{"large":"https://img/l.jpg","medium":"https://img/m.jpg"}},{"id":12,"alt":"","src":{"large":"https://img/2.jpg","medium":"https://img/2m.jpg"}}]}`))
	}))
	defer srv.Close()

	p := NewPexels("pk", 100)
	p.PhotoURL = srv.URL + "/v1"
	got, err := p.SearchImages(context.Background(), Query{Text: "coffee", Count: 2, Orientation: Portrait})
	if err != nil {
		t.Fatalf("SearchImages() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "11" || got[0].URL != "https://img/l.jpg" || got[0].Type != timeline.AssetImage {
		t.Fatalf("unexpected results %+v", got)
	}
	if got[1].Description != "coffee" {
		t.Fatalf("empty alt should fall back to the query, got %q", got[1].Description)
	}
}

func TestPexelsSearchVideosPrefersHD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"videos":[
			{"id":1,"url":"https://pexels/v/1","image":"https://pexels/t/1.jpg","duration":0,"video_files":[{"quality":"sd","link":"https://cdn/sd.mp4"},{"quality":"hd","link":"https://cdn/hd.mp4"}]},
			{"id":2,"url":"https://pexels/v/2","image":"","duration":7,"video_files":[]}
		]}`))
	}))
	defer srv.Close()

	p := NewPexels("pk", 100)
	p.VideoURL = srv.URL
	got, err := p.SearchVideos(context.Background(), Query{Text: "sea"})
	if err != nil {
		t.Fatalf("SearchVideos() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("video without files should be skipped, got %+v", got)
	}
	if got[0].URL != "https://cdn/hd.mp4" || got[0].Duration != 10 || got[0].Type != timeline.AssetVideo {
		t.Fatalf("unexpected video %+v", got[0])
	}
}

func TestPexelsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewPexels("pk", 100)
	p.PhotoURL = srv.URL
	if _, err := p.SearchImages(context.Background(), Query{Text: "x"}); err == nil {
		t.Fatalf("expected error on 429")
	}
}

func TestUnsplashSearchImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Client-ID uk" {
			t.Errorf("unexpected auth %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("orientation") != "squarish" {
			t.Errorf("square should map to squarish, got %q", r.URL.Query().Get("orientation"))
		}
		w.Write([]byte(`{"results":[{"id":"abc","description":"desc","alt_description":"","urls":{"regular":"https://u/r.jpg","small":"https://u/s.jpg"},"tags":[{"title":"cafe"},{"title":"morning"}]}]}`))
	}))
	defer srv.Close()

	u := NewUnsplash("uk", 100)
	u.BaseURL = srv.URL
	got, err := u.SearchImages(context.Background(), Query{Text: "cafe", Orientation: Square})
	if err != nil {
		t.Fatalf("SearchImages() error = %v", err)
	}
	if len(got) != 1 || got[0].Description != "desc" || len(got[0].Tags) != 2 || got[0].Source != SourceUnsplash {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestPlaceholdersWithoutKeys(t *testing.T) {
	for _, key := range []string{"", "your_pexels_api_key_here"} {
		got, err := NewPexels(key, 1).SearchImages(context.Background(), Query{Text: "tea", Count: 3})
		if err != nil {
			t.Fatalf("SearchImages() error = %v", err)
		}
		if len(got) != 3 || !got[0].Placeholder || got[0].Source != SourcePexels {
			t.Fatalf("expected 3 placeholder results, got %+v", got)
		}
	}
	videos, _ := NewPexels("", 1).SearchVideos(context.Background(), Query{Text: "tea", Count: 2})
	if len(videos) != 2 || videos[0].Duration != 10 {
		t.Fatalf("unexpected placeholder videos %+v", videos)
	}
	photos, _ := NewUnsplash("", 1).SearchImages(context.Background(), Query{Text: "tea"})
	if len(photos) != DefaultCount || photos[0].Source != SourceUnsplash {
		t.Fatalf("unexpected placeholder photos %+v", photos)
	}
}

func TestParseOrientation(t *testing.T) {
	tests := map[string]Orientation{"": Landscape, "PORTRAIT": Portrait, "squarish": Square, "square": Square, "weird": Landscape}
	for in, want := range tests {
		if got := ParseOrientation(in); got != want {
			t.Errorf("ParseOrientation(%q) = %s, want %s", in, got, want)
		}
	}
}
