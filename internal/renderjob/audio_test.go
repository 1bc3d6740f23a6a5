package renderjob

import (
	"errors"
	"testing"
)

func TestAudioInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      AudioInput
		wantErr bool
	}{
		{"temp file", TempFile("uploads/abc.mp3"), false},
		{"https url", FromURL("https://stand.fm/episodes/123"), false},
		{"http url", FromURL("http://example.com/a.mp3"), false},
		{"missing kind", AudioInput{Path: "a.mp3"}, true},
		{"unknown kind", AudioInput{Kind: "s3", Path: "a.mp3"}, true},
		{"empty path", TempFile(""), true},
		{"absolute path", TempFile("/etc/passwd"), true},
		{"traversal", TempFile("../secrets.mp3"), true},
		{"nested traversal", TempFile("a/../../b.mp3"), true},
		{"backslash", TempFile(`..\b.mp3`), true},
		{"dot path", TempFile("."), true},
		{"empty url", FromURL(""), true},
		{"ftp url", FromURL("ftp://example.com/a.mp3"), true},
		{"no host", FromURL("https:///a.mp3"), true},
		{"both set", AudioInput{Kind: AudioURL, URL: "https://x.y/a.mp3", Path: "a.mp3"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAudioInput) {
				t.Fatalf("error %v does not wrap ErrInvalidAudioInput", err)
			}
		})
	}
}
