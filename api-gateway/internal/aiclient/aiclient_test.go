package aiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *AIClient {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := New(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestTranscribe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/audio/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("response_format = %q", got)
		}
		if got := r.FormValue("language"); got != "ja" {
			t.Errorf("language = %q", got)
		}
		_, _ = io.WriteString(w, `{"text":" こんにちは。今日は晴れです。 ","language":"japanese","duration":6.5,
			"segments":[{"start":0,"end":2.5,"text":"こんにちは。"},{"start":2.5,"end":3,"text":"  "},{"start":3,"end":6.5,"text":"今日は晴れです。"}]}`)
	})
	c := newTestClient(t, mux)

	path := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr, err := c.Transcribe(context.Background(), path)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if tr.Text != "こんにちは。今日は晴れです。" {
		t.Fatalf("Text = %q", tr.Text)
	}
	if tr.Duration != 6.5 {
		t.Fatalf("Duration = %v", tr.Duration)
	}
	if len(tr.Segments) != 2 {
		t.Fatalf("blank segments should be dropped, got %+v", tr.Segments)
	}
	if tr.Segments[1].StartTime != 3 || tr.Segments[1].EndTime != 6.5 {
		t.Fatalf("segment = %+v", tr.Segments[1])
	}
}

func TestChat(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Model != "gpt-4" || req.MaxTokens != 100 || len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected request %+v", req)
		}
		_, _ = io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"# タイトル\nテスト"}}]}`)
	})
	c := newTestClient(t, mux)

	out, err := c.Chat(context.Background(), ChatRequest{System: "sys", User: "user", MaxTokens: 100})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.HasPrefix(out, "# タイトル") {
		t.Fatalf("out = %q", out)
	}
}

func TestChatEmptyChoice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[]}`)
	})
	c := newTestClient(t, mux)

	if _, err := c.Chat(context.Background(), ChatRequest{User: "x"}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestGenerateImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["size"] != "1792x1024" || req["model"] != "dall-e-3" || req["style"] != "natural" {
			t.Errorf("unexpected request %v", req)
		}
		_, _ = io.WriteString(w, `{"created":1,"data":[{"url":"https://img.example/cover.png"}]}`)
	})
	c := newTestClient(t, mux)

	u, err := c.GenerateImage(context.Background(), ImageRequest{Prompt: "a cover"})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if u != "https://img.example/cover.png" {
		t.Fatalf("url = %q", u)
	}
}

func TestProcessorHealth(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	p, err := NewProcessorHealth(lis.Addr().String())
	if err != nil {
		t.Fatalf("NewProcessorHealth: %v", err)
	}
	defer p.Close()

	status, err := p.Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if status != "SERVING" {
		t.Fatalf("status = %q, want SERVING", status)
	}
}
