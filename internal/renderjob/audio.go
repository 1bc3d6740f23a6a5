package renderjob

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ErrInvalidAudioInput is returned for any malformed AudioInput.
var ErrInvalidAudioInput = errors.New("invalid audio input")

// AudioKind discriminates AudioInput.
type AudioKind string

const (
	// AudioTempFile is a file stored earlier by the upload or download endpoints.
	AudioTempFile AudioKind = "temp_file"
	// AudioURL is a remote audio file or a stand.fm episode page.
	AudioURL AudioKind = "url"
)

// AudioInput names where the narration comes from. Exactly one of Path and
// URL is set, matching Kind.
type AudioInput struct {
	Kind AudioKind `json:"kind" validate:"required,oneof=temp_file url"`
	// Path is relative to the upload directory.
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

// TempFile builds a temp_file input.
func TempFile(p string) AudioInput {
	return AudioInput{Kind: AudioTempFile, Path: p}
}

// FromURL builds a url input.
func FromURL(u string) AudioInput {
	return AudioInput{Kind: AudioURL, URL: u}
}

// Validate checks the variant and its payload. Errors wrap ErrInvalidAudioInput.
func (a AudioInput) Validate() error {
	switch a.Kind {
	case AudioTempFile:
		if a.URL != "" {
			return fmt.Errorf("%w: temp_file input must not carry a url", ErrInvalidAudioInput)
		}
		return validateRelPath(a.Path)
	case AudioURL:
		if a.Path != "" {
			return fmt.Errorf("%w: url input must not carry a path", ErrInvalidAudioInput)
		}
		return validateURL(a.URL)
	case "":
		return fmt.Errorf("%w: kind is required", ErrInvalidAudioInput)
	}
	return fmt.Errorf("%w: unknown kind %q", ErrInvalidAudioInput, a.Kind)
}

func validateRelPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%w: path is required", ErrInvalidAudioInput)
	}
	if strings.ContainsRune(p, '\\') || strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: path must be relative", ErrInvalidAudioInput)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return fmt.Errorf("%w: path must not leave the upload directory", ErrInvalidAudioInput)
		}
	}
	if path.Clean(p) == "." {
		return fmt.Errorf("%w: path names no file", ErrInvalidAudioInput)
	}
	return nil
}

func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidAudioInput)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAudioInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported url scheme %q", ErrInvalidAudioInput, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: url has no host", ErrInvalidAudioInput)
	}
	return nil
}
