// Package assemblyai is a thin client for the AssemblyAI word timestamp
// transcription API: upload, submit, then poll until the transcript is ready.
package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kenaxel/standfm2movie/internal/captions"
	"github.com/kenaxel/standfm2movie/internal/poll"
)

const (
	DefaultBaseURL      = "https://api.assemblyai.com/v2"
	DefaultPollInterval = 10 * time.Second
	DefaultMaxAttempts  = 60
)

// ErrNoAPIKey is returned when the client was built without a key.
var ErrNoAPIKey = errors.New("assemblyai: api key not configured")

// Transcript statuses reported by the API.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

type Word struct {
	Text  string `json:"text"`
	Start int64  `json:"start"` // milliseconds
	End   int64  `json:"end"`
}

type Transcript struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	Text          string  `json:"text"`
	Words         []Word  `json:"words"`
	AudioDuration float64 `json:"audio_duration"`
	Error         string  `json:"error"`
}

// Result is a finished transcription in caption units.
type Result struct {
	Text     string
	Words    []captions.Segment
	Duration float64
}

type Client struct {
	BaseURL      string
	APIKey       string
	LanguageCode string
	HTTPClient   *http.Client
	Poller       *poll.Poller
}

// NewClient returns a client with the default endpoint and polling budget.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:      DefaultBaseURL,
		APIKey:       apiKey,
		LanguageCode: "ja",
		HTTPClient:   &http.Client{Timeout: 2 * time.Minute},
		Poller:       poll.New(DefaultPollInterval, DefaultMaxAttempts),
	}
}

// Enabled reports whether the client can be used.
func (c *Client) Enabled() bool {
	return c != nil && c.APIKey != ""
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("authorization", c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("assemblyai: %s %s returned %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("assemblyai: decode response: %w", err)
	}
	return nil
}

// Upload sends raw audio and returns the private URL AssemblyAI stores it at.
func (c *Client) Upload(ctx context.Context, audio io.Reader) (string, error) {
	if !c.Enabled() {
		return "", ErrNoAPIKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/upload", audio)
	if err != nil {
		return "", err
	}
	req.Header.Set("content-type", "application/octet-stream")

	var out struct {
		UploadURL string `json:"upload_url"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}
	return out.UploadURL, nil
}

// Submit starts a transcription of audioURL and returns its id.
func (c *Client) Submit(ctx context.Context, audioURL string) (string, error) {
	if !c.Enabled() {
		return "", ErrNoAPIKey
	}
	body, err := json.Marshal(map[string]interface{}{
		"audio_url":     audioURL,
		"language_code": c.LanguageCode,
		"punctuate":     true,
		"format_text":   true,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transcript", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("content-type", "application/json")

	var out Transcript
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("submit transcript: %w", err)
	}
	if out.ID == "" {
		return "", errors.New("submit transcript: empty id")
	}
	return out.ID, nil
}

// Get fetches the current state of a transcription.
func (c *Client) Get(ctx context.Context, id string) (*Transcript, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/transcript/"+id, nil)
	if err != nil {
		return nil, err
	}
	var out Transcript
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("get transcript %s: %w", id, err)
	}
	return &out, nil
}

// Wait polls transcription id until it completes, fails or the poller's
// budget is spent.
func (c *Client) Wait(ctx context.Context, id string) (*Transcript, error) {
	poller := c.Poller
	if poller == nil {
		poller = poll.New(DefaultPollInterval, DefaultMaxAttempts)
	}
	t, _, err := poll.Wait(ctx, poller, func(ctx context.Context) (*Transcript, poll.Outcome, error) {
		t, err := c.Get(ctx, id)
		if err != nil {
			return nil, poll.Pending, err
		}
		switch t.Status {
		case StatusCompleted:
			return t, poll.Done, nil
		case StatusError:
			return t, poll.Failed, nil
		}
		return t, poll.Pending, nil
	})
	if errors.Is(err, poll.ErrFailed) && t != nil {
		return nil, fmt.Errorf("transcript %s: %w: %s", id, err, t.Error)
	}
	if err != nil {
		return nil, fmt.Errorf("transcript %s: %w", id, err)
	}
	return t, nil
}

// TranscribeFile uploads a local file and waits for its word timestamps.
func (c *Client) TranscribeFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	uploadURL, err := c.Upload(ctx, f)
	if err != nil {
		return nil, err
	}
	id, err := c.Submit(ctx, uploadURL)
	if err != nil {
		return nil, err
	}
	t, err := c.Wait(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Result(), nil
}

// Result converts word timings from milliseconds to seconds.
func (t *Transcript) Result() *Result {
	words := make([]captions.Segment, 0, len(t.Words))
	for _, w := range t.Words {
		words = append(words, captions.Segment{
			Text:      w.Text,
			StartTime: float64(w.Start) / 1000,
			EndTime:   float64(w.End) / 1000,
		})
	}
	return &Result{Text: t.Text, Words: words, Duration: t.AudioDuration}
}
