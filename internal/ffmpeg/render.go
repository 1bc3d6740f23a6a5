package ffmpeg

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kenaxel/standfm2movie/internal/timeline"
)

// Clip is one timeline slot ready for encoding. Path is a local file; it is
// ignored for fillers.
type Clip struct {
	Path       string
	Type       timeline.AssetType
	Filler     bool
	Duration   float64
	Transition timeline.Transition
}

// SubtitleStyle maps to libass force_style fields.
type SubtitleStyle struct {
	FontName string
	// FontSize is in output pixels.
	FontSize        int
	Color           string
	BackgroundColor string
	Outline         bool
	Bold            bool
	// Position is top, center or bottom.
	Position string
}

// RenderSpec describes one output file.
type RenderSpec struct {
	AudioPath       string
	SubtitlesPath   string
	OutputPath      string
	Width           int
	Height          int
	FPS             int
	BackgroundColor string
	Duration        float64
	Clips           []Clip
	Subtitles       SubtitleStyle
}

const maxFadeSeconds = 0.5

// BuildRenderArgs returns the ffmpeg arguments for spec. Every clip becomes
// one input trimmed to its slot, scaled and cropped to the frame, given its
// entry effect and concatenated in order. Captions are burned in and the
// narration is mapped as the only audio track.
func BuildRenderArgs(spec RenderSpec) ([]string, error) {
	if spec.AudioPath == "" || spec.OutputPath == "" {
		return nil, errors.New("ffmpeg: audio and output paths are required")
	}
	if len(spec.Clips) == 0 {
		return nil, errors.New("ffmpeg: at least one clip is required")
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("ffmpeg: invalid frame size %dx%d", spec.Width, spec.Height)
	}
	fps := spec.FPS
	if fps <= 0 {
		fps = 30
	}
	size := fmt.Sprintf("%dx%d", spec.Width, spec.Height)

	args := []string{"-y"}
	for i, c := range spec.Clips {
		if c.Duration <= 0 {
			return nil, fmt.Errorf("ffmpeg: clip %d has no duration", i)
		}
		d := seconds(c.Duration)
		switch {
		case c.Filler || c.Path == "":
			args = append(args, "-f", "lavfi", "-t", d, "-i",
				fmt.Sprintf("color=c=%s:s=%s:r=%d", ffColor(spec.BackgroundColor), size, fps))
		case c.Type == timeline.AssetVideo:
			args = append(args, "-stream_loop", "-1", "-t", d, "-i", c.Path)
		default:
			args = append(args, "-loop", "1", "-t", d, "-i", c.Path)
		}
	}
	audioIndex := len(spec.Clips)
	args = append(args, "-i", spec.AudioPath)

	var graph []string
	var labels strings.Builder
	for i, c := range spec.Clips {
		chain := fmt.Sprintf("[%d:v]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d,setsar=1,fps=%d",
			i, spec.Width, spec.Height, spec.Width, spec.Height, fps)
		switch c.Transition {
		case timeline.TransitionZoom:
			chain += fmt.Sprintf(",zoompan=z='min(1+0.0015*on,1.3)':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=1:s=%s:fps=%d", size, fps)
		case timeline.TransitionFade:
			chain += fmt.Sprintf(",fade=t=in:st=0:d=%s", seconds(math.Min(maxFadeSeconds, c.Duration/2)))
		}
		chain += fmt.Sprintf(",format=yuv420p,trim=duration=%s,setpts=PTS-STARTPTS[v%d]", seconds(c.Duration), i)
		graph = append(graph, chain)
		fmt.Fprintf(&labels, "[v%d]", i)
	}
	graph = append(graph, fmt.Sprintf("%sconcat=n=%d:v=1:a=0[vcat]", labels.String(), len(spec.Clips)))

	videoOut := "[vcat]"
	if spec.SubtitlesPath != "" {
		graph = append(graph, fmt.Sprintf("[vcat]subtitles=filename=%s:force_style='%s'[vout]",
			quoteFilterValue(spec.SubtitlesPath), forceStyle(spec.Subtitles, spec.Height)))
		videoOut = "[vout]"
	}

	args = append(args,
		"-filter_complex", strings.Join(graph, ";"),
		"-map", videoOut,
		"-map", fmt.Sprintf("%d:a", audioIndex),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
		"-r", strconv.Itoa(fps),
		"-c:a", "aac",
		"-b:a", "128k",
	)
	if spec.Duration > 0 {
		args = append(args, "-t", seconds(spec.Duration))
	}
	args = append(args, "-movflags", "+faststart", spec.OutputPath)
	return args, nil
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// ffColor converts #RRGGBB to the 0xRRGGBB form ffmpeg expects.
func ffColor(c string) string {
	if c == "" {
		return "black"
	}
	if strings.HasPrefix(c, "#") && len(c) == 7 {
		return "0x" + c[1:]
	}
	return c
}

// assColor converts #RRGGBB to libass &HAABBGGRR.
func assColor(c string, alpha byte) (string, bool) {
	if !strings.HasPrefix(c, "#") || len(c) != 7 {
		return "", false
	}
	if _, err := strconv.ParseUint(c[1:], 16, 32); err != nil {
		return "", false
	}
	rr, gg, bb := c[1:3], c[3:5], c[5:7]
	return fmt.Sprintf("&H%02X%s%s%s", alpha, strings.ToUpper(bb), strings.ToUpper(gg), strings.ToUpper(rr)), true
}

// forceStyle renders style for libass. libass scales font sizes against a
// 288 line script height, so pixel sizes are converted.
func forceStyle(style SubtitleStyle, frameHeight int) string {
	var parts []string
	if style.FontName != "" {
		parts = append(parts, "FontName="+strings.ReplaceAll(style.FontName, ",", " "))
	}
	if style.FontSize > 0 && frameHeight > 0 {
		size := int(math.Round(float64(style.FontSize) * 288 / float64(frameHeight)))
		if size < 8 {
			size = 8
		}
		parts = append(parts, "FontSize="+strconv.Itoa(size))
	}
	if c, ok := assColor(style.Color, 0); ok {
		parts = append(parts, "PrimaryColour="+c)
	}
	if style.Bold {
		parts = append(parts, "Bold=1")
	}
	if c, ok := assColor(style.BackgroundColor, 0x60); ok {
		parts = append(parts, "BorderStyle=3", "BackColour="+c, "OutlineColour="+c)
	} else if style.Outline {
		parts = append(parts, "BorderStyle=1", "Outline=2", "OutlineColour=&H00000000")
	}
	switch style.Position {
	case "top":
		parts = append(parts, "Alignment=8")
	case "center":
		parts = append(parts, "Alignment=5")
	default:
		parts = append(parts, "Alignment=2", "MarginV=30")
	}
	return strings.Join(parts, ",")
}

// quoteFilterValue quotes a path for use inside a filtergraph option.
func quoteFilterValue(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}
