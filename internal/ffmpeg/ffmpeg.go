// Package ffmpeg wraps the ffprobe and ffmpeg command line tools.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w\nStderr: %s", name, err, tail(stderr.String(), 2000))
	}
	return out.Bytes(), nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Tool locates the binaries and runs them.
type Tool struct {
	FFmpegPath  string
	FFprobePath string
	Runner      Runner
}

// New returns a Tool using the binaries on PATH unless overridden.
func New(ffmpegPath, ffprobePath string) *Tool {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Tool{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath, Runner: execRunner{}}
}

func (t *Tool) runner() Runner {
	if t.Runner == nil {
		return execRunner{}
	}
	return t.Runner
}

// ProbeStream is the subset of an ffprobe stream entry we use.
type ProbeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// ProbeOutput is the subset of ffprobe -show_format -show_streams output we use.
type ProbeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
		Size       string `json:"size"`
	} `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

// Duration returns the container duration in seconds.
func (p *ProbeOutput) Duration() (float64, error) {
	if p.Format.Duration == "" {
		return 0, fmt.Errorf("could not retrieve duration from ffprobe output")
	}
	d, err := strconv.ParseFloat(p.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing duration string '%s': %w", p.Format.Duration, err)
	}
	return d, nil
}

// HasAudio reports whether any stream is an audio stream.
func (p *ProbeOutput) HasAudio() bool {
	for _, s := range p.Streams {
		if s.CodecType == "audio" {
			return true
		}
	}
	return false
}

// Probe runs ffprobe against filePath.
func (t *Tool) Probe(ctx context.Context, filePath string) (*ProbeOutput, error) {
	out, err := t.runner().Run(ctx, t.FFprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)
	if err != nil {
		return nil, err
	}

	var probe ProbeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("error unmarshalling ffprobe output: %w", err)
	}
	return &probe, nil
}

// ProbeDuration returns the duration of a media file in seconds.
func (t *Tool) ProbeDuration(ctx context.Context, filePath string) (float64, error) {
	probe, err := t.Probe(ctx, filePath)
	if err != nil {
		return 0, err
	}
	return probe.Duration()
}

// TranscodeToMP3 re-encodes any audio (or the audio track of a video) into a
// small mono mp3 suited to speech recognition.
func (t *Tool) TranscodeToMP3(ctx context.Context, inputFile, outputFile string) error {
	_, err := t.runner().Run(ctx, t.FFmpegPath,
		"-y",
		"-i", inputFile,
		"-vn",
		"-acodec", "libmp3lame",
		"-ar", "16000",
		"-ac", "1",
		"-b:a", "64k",
		outputFile,
	)
	if err != nil {
		return fmt.Errorf("transcode %s: %w", inputFile, err)
	}
	return nil
}

// Render builds the final video described by spec.
func (t *Tool) Render(ctx context.Context, spec RenderSpec) error {
	args, err := BuildRenderArgs(spec)
	if err != nil {
		return err
	}
	if _, err := t.runner().Run(ctx, t.FFmpegPath, args...); err != nil {
		return fmt.Errorf("render %s: %w", spec.OutputPath, err)
	}
	return nil
}
