package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kenaxel/standfm2movie/internal/apperr"
	"github.com/kenaxel/standfm2movie/internal/assemblyai"
	"github.com/kenaxel/standfm2movie/internal/audiosource"
	"github.com/kenaxel/standfm2movie/internal/captions"
	"github.com/kenaxel/standfm2movie/internal/ffmpeg"
	"github.com/kenaxel/standfm2movie/internal/jobctx"
	"github.com/kenaxel/standfm2movie/internal/keywords"
	"github.com/kenaxel/standfm2movie/internal/poll"
	"github.com/kenaxel/standfm2movie/internal/renderjob"
	"github.com/kenaxel/standfm2movie/internal/stock"
	"github.com/kenaxel/standfm2movie/internal/storyboard"
	"github.com/kenaxel/standfm2movie/internal/timeline"
	"github.com/kenaxel/standfm2movie/video-processor/internal/db"
	"github.com/kenaxel/standfm2movie/video-processor/internal/metrics"
)

// JobStore records job progress and the rows a finished render touches.
type JobStore interface {
	UpdateJobStatus(jobID string, status string, outputDetails interface{}, errorMessage string) error
	UpdateProjectStatus(projectID, status, videoURL string) error
	RecordVideo(userID string, seconds float64) error
}

// AudioFetcher downloads remote audio, resolving stand.fm pages first.
type AudioFetcher interface {
	Fetch(ctx context.Context, rawURL, dir string) (*audiosource.File, error)
}

// Transcriber returns word timestamps for a local audio file.
type Transcriber interface {
	TranscribeFile(ctx context.Context, path string) (*assemblyai.Result, error)
}

// CandidateSearcher proposes background visuals for a list of keywords.
type CandidateSearcher interface {
	Candidates(ctx context.Context, keywords []string, orientation stock.Orientation, count int) []timeline.Asset
}

// MediaTool probes audio and encodes the final video.
type MediaTool interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
	Render(ctx context.Context, spec ffmpeg.RenderSpec) error
}

// Project statuses written back to video_projects.
const (
	projectCompleted = "completed"
	projectFailed    = "failed"
)

// RendererConfig holds the settings shared by every render job.
type RendererConfig struct {
	// UploadDir resolves temp_file audio inputs.
	UploadDir string
	// OutputDir receives <job id>.mp4.
	OutputDir string
	// WorkRoot holds the per-job scratch directories (os.TempDir when empty).
	WorkRoot string
	// OutputURLPrefix is joined with the file name to build video_url.
	OutputURLPrefix string
	CandidateCount  int
	KeywordCount    int
	Storyboard      storyboard.Config
	JobTimeout      time.Duration
}

// Renderer builds render jobs from claimed rows and holds their collaborators.
// Transcriber and Stock may be nil.
type Renderer struct {
	Config      RendererConfig
	Store       JobStore
	Audio       AudioFetcher
	Transcriber Transcriber
	Stock       CandidateSearcher
	Media       MediaTool
	Assets      *AssetDownloader
	Metrics     *metrics.Metrics
	Logger      *logrus.Logger
}

// RenderVideoJob renders one claimed RENDER_VIDEO row.
type RenderVideoJob struct {
	JobID   string
	Request renderjob.Request
	r       *Renderer
}

// NewJob decodes the row's payload. Rows that cannot be decoded or fail
// validation are returned as an error; the caller marks them FAILED.
func (r *Renderer) NewJob(row db.VideoJobStatus) (*RenderVideoJob, error) {
	var req renderjob.Request
	if err := json.Unmarshal(row.InputPayload, &req); err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidRequest, "cannot decode input payload", err)
	}
	if err := req.Validate(); err != nil {
		code := apperr.CodeInvalidRequest
		if errors.Is(err, renderjob.ErrInvalidAudioInput) {
			code = apperr.CodeNoAudioInput
		}
		return nil, apperr.Wrap(code, "invalid render request", err)
	}
	req.Settings = req.Settings.WithDefaults()
	return &RenderVideoJob{JobID: row.JobID, Request: req, r: r}, nil
}

// Fail marks a job FAILED with a "<CODE>: detail" message.
func (r *Renderer) Fail(jobID, projectID string, err error) {
	code := apperr.CodeOf(err, apperr.CodeVideoGenerationFailed)
	detail := err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Message != "" {
		detail = ae.Message
		if ae.Err != nil {
			detail += ": " + ae.Err.Error()
		}
	}

	log := r.Logger.WithFields(logrus.Fields{"job_id": jobID, "code": code})
	if uerr := r.Store.UpdateJobStatus(jobID, db.StatusFailed, nil, fmt.Sprintf("%s: %s", code, detail)); uerr != nil {
		log.WithError(uerr).Error("Failed to mark job as failed")
	}
	if projectID != "" {
		if uerr := r.Store.UpdateProjectStatus(projectID, projectFailed, ""); uerr != nil {
			log.WithError(uerr).Warn("Failed to mark project as failed")
		}
	}
	if r.Metrics != nil {
		r.Metrics.JobsTotal.WithLabelValues(metrics.ResultFailed, string(code)).Inc()
	}
}

// ID returns the unique identifier of the job.
func (j *RenderVideoJob) ID() string {
	return j.JobID
}

// Execute runs the whole render and records the outcome in the job table.
func (j *RenderVideoJob) Execute(ctx context.Context) error {
	r := j.r
	if r.Config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Config.JobTimeout)
		defer cancel()
	}
	if r.Metrics != nil {
		r.Metrics.InFlight.Inc()
		defer r.Metrics.InFlight.Dec()
		start := time.Now()
		defer func() { r.Metrics.JobSeconds.Observe(time.Since(start).Seconds()) }()
	}

	result, err := j.render(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && apperr.CodeOf(err, "") == "" {
			err = apperr.Wrap(apperr.CodeTimeout, "render timed out", err)
		}
		r.Fail(j.JobID, j.Request.ProjectID, err)
		return err
	}

	log := r.Logger.WithField("job_id", j.JobID)
	if err := r.Store.UpdateJobStatus(j.JobID, db.StatusCompleted, result, ""); err != nil {
		log.WithError(err).Error("Failed to mark job as completed")
		return err
	}
	if j.Request.ProjectID != "" {
		if err := r.Store.UpdateProjectStatus(j.Request.ProjectID, projectCompleted, result.VideoURL); err != nil {
			log.WithError(err).Warn("Failed to update project")
		}
	}
	if j.Request.UserID != "" {
		if err := r.Store.RecordVideo(j.Request.UserID, result.Duration); err != nil {
			log.WithError(err).Warn("Failed to record usage")
		}
	}
	if r.Metrics != nil {
		r.Metrics.JobsTotal.WithLabelValues(metrics.ResultCompleted, "").Inc()
		r.Metrics.VideoSeconds.Observe(result.Duration)
	}
	log.WithFields(logrus.Fields{
		"output":   result.OutputFile,
		"duration": result.Duration,
		"captions": result.CaptionCount,
	}).Info("Render completed")
	return nil
}

func (r *Renderer) observe(stage string, start time.Time) {
	if r.Metrics != nil {
		r.Metrics.StageSeconds.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}

func (j *RenderVideoJob) render(ctx context.Context) (*renderjob.Result, error) {
	r := j.r
	req := j.Request
	log := r.Logger.WithField("job_id", j.JobID)

	work, err := jobctx.New(r.Config.WorkRoot, j.JobID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "cannot create work dir", err)
	}
	defer func() {
		if err := work.Cleanup(); err != nil {
			log.WithError(err).Warn("Failed to remove work dir")
		}
	}()

	start := time.Now()
	audio, err := j.resolveAudio(ctx, work.Dir)
	if err != nil {
		return nil, err
	}
	r.observe("audio", start)

	probed, err := r.Media.ProbeDuration(ctx, audio.Path)
	if err != nil {
		log.WithError(err).Warn("ffprobe failed, falling back to the duration estimate")
		probed = 0
	}

	start = time.Now()
	spoken, err := j.transcript(ctx, audio.Path)
	if err != nil {
		return nil, err
	}
	r.observe("transcribe", start)
	text := spoken.Text

	authoritative := probed
	if authoritative <= 0 {
		authoritative = spoken.Duration
	}
	if authoritative <= 0 {
		authoritative = req.Settings.Duration
	}

	kw := req.Keywords
	if len(kw) == 0 {
		kw = keywords.Extract(text, r.Config.KeywordCount)
	}

	start = time.Now()
	candidates := append([]timeline.Asset(nil), req.CustomAssets...)
	if r.Stock != nil && len(kw) > 0 {
		candidates = append(candidates, r.Stock.Candidates(ctx, kw, orientationFor(req.Settings), r.Config.CandidateCount)...)
	}
	r.observe("stock", start)

	board := storyboard.Compose(storyboard.Input{
		RawTranscriptText:     text,
		ExternalTimestamps:    spoken.Segments,
		Words:                 spoken.Words,
		AuthoritativeDuration: authoritative,
		FileSizeBytes:         audio.Size,
		CandidateAssets:       candidates,
	}, r.Config.Storyboard)
	log.WithFields(logrus.Fields{
		"duration":        board.Duration,
		"duration_source": board.DurationSource,
		"captions":        len(board.CaptionSegments),
		"timeline":        len(board.Timeline),
		"keywords":        kw,
	}).Info("Storyboard composed")

	srtPath := work.Path("captions.srt")
	if err := writeSRT(srtPath, board.CaptionSegments); err != nil {
		return nil, apperr.Wrap(apperr.CodeVideoGenerationFailed, "cannot write captions", err)
	}

	start = time.Now()
	clips := j.clips(ctx, work, board)
	r.observe("assets", start)

	if err := os.MkdirAll(r.Config.OutputDir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "cannot create output dir", err)
	}
	name := j.JobID + ".mp4"
	spec := ffmpeg.RenderSpec{
		AudioPath:       audio.Path,
		SubtitlesPath:   srtPath,
		OutputPath:      filepath.Join(r.Config.OutputDir, name),
		Width:           req.Settings.Resolution.Width,
		Height:          req.Settings.Resolution.Height,
		FPS:             req.Settings.FPS,
		BackgroundColor: req.Settings.BackgroundColor,
		Duration:        board.Duration,
		Clips:           clips,
		Subtitles:       subtitleStyle(req.Settings),
	}

	start = time.Now()
	if err := r.Media.Render(ctx, spec); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperr.Wrap(apperr.CodeTimeout, "ffmpeg render timed out", err)
		}
		return nil, apperr.Wrap(apperr.CodeVideoGenerationFailed, "ffmpeg render failed", err)
	}
	r.observe("render", start)

	return &renderjob.Result{
		OutputFile:      name,
		VideoURL:        r.Config.OutputURLPrefix + name,
		Duration:        board.Duration,
		DurationSource:  string(board.DurationSource),
		CaptionCount:    len(board.CaptionSegments),
		TimelineEntries: len(board.Timeline),
		Keywords:        kw,
	}, nil
}

// resolveAudio returns the narration as a local file.
func (j *RenderVideoJob) resolveAudio(ctx context.Context, dir string) (*audiosource.File, error) {
	in := j.Request.Audio
	switch in.Kind {
	case renderjob.AudioTempFile:
		path := filepath.Join(j.r.Config.UploadDir, filepath.FromSlash(in.Path))
		info, err := os.Stat(path)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeNoAudioInput, "uploaded audio file not found", err)
		}
		if info.IsDir() {
			return nil, apperr.New(apperr.CodeNoAudioInput, "uploaded audio path is a directory")
		}
		return &audiosource.File{Path: path, Name: filepath.Base(path), Size: info.Size()}, nil

	case renderjob.AudioURL:
		if j.r.Audio == nil {
			return nil, apperr.New(apperr.CodeInternal, "audio download is not configured")
		}
		f, err := j.r.Audio.Fetch(ctx, in.URL, dir)
		switch {
		case err == nil:
			return f, nil
		case errors.Is(err, audiosource.ErrAudioNotFound):
			return nil, apperr.Wrap(apperr.CodeAudioURLNotFound, "no audio found at the given URL", err)
		case errors.Is(err, audiosource.ErrTooLarge):
			return nil, apperr.Wrap(apperr.CodeAudioTooLarge, "remote audio exceeds the size limit", err)
		case errors.Is(err, context.DeadlineExceeded):
			return nil, apperr.Wrap(apperr.CodeTimeout, "audio download timed out", err)
		}
		return nil, apperr.Wrap(apperr.CodeNoAudioInput, "audio download failed", err)
	}
	return nil, apperr.New(apperr.CodeNoAudioInput, "no audio input")
}

// spokenText is what the job knows about the words in the audio. Segments
// are sentence windows sent with the request; Words come from the transcriber.
type spokenText struct {
	Text     string
	Segments []captions.Segment
	Words    []captions.Segment
	Duration float64
}

// transcript returns the spoken text and its timings. A transcript sent with
// the request wins over the transcriber.
func (j *RenderVideoJob) transcript(ctx context.Context, audioPath string) (spokenText, error) {
	req := j.Request
	if strings.TrimSpace(req.Transcript) != "" || j.r.Transcriber == nil {
		return spokenText{Text: strings.TrimSpace(req.Transcript), Segments: req.Segments}, nil
	}

	res, err := j.r.Transcriber.TranscribeFile(ctx, audioPath)
	switch {
	case err == nil:
		return spokenText{Text: strings.TrimSpace(res.Text), Words: res.Words, Duration: res.Duration}, nil
	case errors.Is(err, poll.ErrTimedOut), errors.Is(err, context.DeadlineExceeded):
		return spokenText{}, apperr.Wrap(apperr.CodeTimeout, "transcription timed out", err)
	}
	return spokenText{}, apperr.Wrap(apperr.CodeTranscriptionFailed, "transcription failed", err)
}

// clips downloads the visuals of the timeline. Entries whose download fails
// are drawn as filler so the timeline keeps its length.
func (j *RenderVideoJob) clips(ctx context.Context, work *jobctx.Context, board storyboard.Output) []ffmpeg.Clip {
	log := j.r.Logger.WithField("job_id", j.JobID)
	clips := make([]ffmpeg.Clip, 0, len(board.Timeline))
	for i, e := range board.Timeline {
		d := e.Duration()
		if d <= 0 {
			continue
		}
		clip := ffmpeg.Clip{Type: e.Asset.Type, Filler: e.Filler, Duration: d, Transition: e.TransitionType}
		if !e.Filler && e.Asset.URL != "" && j.r.Assets != nil {
			path, err := j.r.Assets.Download(ctx, e.Asset.URL, work.Path(fmt.Sprintf("asset-%03d", i)))
			if err != nil {
				log.WithError(err).WithField("url", e.Asset.URL).Warn("Asset download failed, using filler")
				clip.Filler = true
			} else {
				clip.Path = path
			}
		} else {
			clip.Filler = true
		}
		clips = append(clips, clip)
	}
	if len(clips) == 0 {
		clips = append(clips, ffmpeg.Clip{Type: timeline.AssetImage, Filler: true, Duration: board.Duration})
	}
	return clips
}

func writeSRT(path string, segments []captions.Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := captions.WriteSRT(f, segments); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func orientationFor(s renderjob.VideoSettings) stock.Orientation {
	if s.Format == renderjob.FormatTikTok || s.Resolution.Height > s.Resolution.Width {
		return stock.Portrait
	}
	return stock.Landscape
}

func subtitleStyle(s renderjob.VideoSettings) ffmpeg.SubtitleStyle {
	cs := s.CaptionStyle
	return ffmpeg.SubtitleStyle{
		FontName:        s.FontFamily,
		FontSize:        cs.FontSize,
		Color:           cs.Color,
		BackgroundColor: cs.BackgroundColor,
		Outline:         cs.Outline,
		Bold:            cs.FontWeight == "bold",
		Position:        cs.Position,
	}
}
