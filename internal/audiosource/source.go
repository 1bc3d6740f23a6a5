// Package audiosource resolves remote audio (direct links or stand.fm episode
// pages) and stores it locally with a size cap.
package audiosource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxBytes caps every stored audio file.
const DefaultMaxBytes = 15 << 20

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var (
	// ErrTooLarge is returned when audio exceeds the size cap.
	ErrTooLarge = errors.New("audio file too large")
	// ErrAudioNotFound is returned when an episode page has no audio URL.
	ErrAudioNotFound = errors.New("audio url not found")
)

// File is audio stored on local disk.
type File struct {
	Path        string `json:"filePath"`
	Name        string `json:"fileName"`
	ID          string `json:"uniqueId"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
	OriginalURL string `json:"originalUrl,omitempty"`
}

type Resolver struct {
	HTTPClient *http.Client
	MaxBytes   int64
}

func NewResolver(maxBytes int64) *Resolver {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Resolver{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		MaxBytes:   maxBytes,
	}
}

// IsEpisodePage reports whether rawURL points at a stand.fm page rather than
// an audio file.
func IsEpisodePage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "stand.fm" || strings.HasSuffix(host, ".stand.fm")
}

// Resolve returns the audio file URL behind rawURL.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	if !IsEpisodePage(rawURL) {
		return rawURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch episode page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch episode page: %w: status %d", ErrAudioNotFound, resp.StatusCode)
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return "", fmt.Errorf("read episode page: %w", err)
	}
	audioURL, ok := ExtractAudioURL(string(page))
	if !ok {
		return "", ErrAudioNotFound
	}
	if ref, err := url.Parse(audioURL); err == nil && !ref.IsAbs() {
		audioURL = resp.Request.URL.ResolveReference(ref).String()
	}
	return audioURL, nil
}

// Download stores the audio at audioURL in dir.
func (r *Resolver) Download(ctx context.Context, audioURL, dir string) (*File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download audio: status %d", resp.StatusCode)
	}
	if resp.ContentLength > r.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	contentType := resp.Header.Get("Content-Type")
	f, err := Save(resp.Body, dir, extensionFor(contentType, audioURL), r.MaxBytes)
	if err != nil {
		return nil, err
	}
	f.ContentType = contentType
	f.OriginalURL = audioURL
	return f, nil
}

// Fetch resolves rawURL and downloads the audio behind it.
func (r *Resolver) Fetch(ctx context.Context, rawURL, dir string) (*File, error) {
	audioURL, err := r.Resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	f, err := r.Download(ctx, audioURL, dir)
	if err != nil {
		return nil, err
	}
	f.OriginalURL = rawURL
	return f, nil
}

// Save copies at most maxBytes from src into a new uniquely named file in dir.
// The partial file is removed when the cap is exceeded.
func Save(src io.Reader, dir, ext string, maxBytes int64) (*File, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	if ext == "" || !strings.HasPrefix(ext, ".") {
		ext = ".mp3"
	}

	id := uuid.NewString()
	name := "audio-" + id + strings.ToLower(ext)
	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create audio file: %w", err)
	}

	n, err := io.Copy(out, io.LimitReader(src, maxBytes+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > maxBytes {
		err = fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return &File{Path: path, Name: name, ID: id, Size: n}, nil
}

var extensions = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/mp4":   ".m4a",
	"audio/x-m4a": ".m4a",
	"audio/aac":   ".aac",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/ogg":   ".ogg",
	"audio/webm":  ".webm",
	"audio/flac":  ".flac",
}

func extensionFor(contentType, rawURL string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if ext, ok := extensions[mt]; ok {
			return ext
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.ToLower(filepath.Ext(u.Path)); ext != "" && len(ext) <= 5 {
			return ext
		}
	}
	return ".mp3"
}

// AllowedExtension reports whether name looks like an audio or video file we
// can transcode.
func AllowedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3", ".m4a", ".aac", ".wav", ".ogg", ".webm", ".flac", ".mp4", ".mpeg", ".mpga", ".oga":
		return true
	}
	return false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
