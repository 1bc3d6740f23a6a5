package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kenaxel/standfm2movie/api-gateway/middleware"
	"github.com/kenaxel/standfm2movie/api-gateway/models"
	"github.com/kenaxel/standfm2movie/api-gateway/utils"
	"github.com/kenaxel/standfm2movie/internal/apperr"
	"github.com/kenaxel/standfm2movie/internal/audiosource"
	"github.com/kenaxel/standfm2movie/internal/captions"
	"github.com/kenaxel/standfm2movie/internal/duration"
	"github.com/kenaxel/standfm2movie/internal/jobctx"
)

// TranscribeURLRequest is the JSON form of POST /transcribe.
type TranscribeURLRequest struct {
	URL      string `json:"url"`
	AudioURL string `json:"audioUrl"`
}

// TranscribeAudio godoc
// @Summary Transcribe audio
// @Description Accepts a multipart "audio"/"file" upload, a multipart "audioUrl" field or a JSON {"url"} (stand.fm pages are resolved), and returns the Whisper transcript with caption segments.
// @Tags transcription
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param audio formData file false "Audio file"
// @Param audioUrl formData string false "Audio or stand.fm URL"
// @Success 200 {object} models.TranscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transcribe [post]
func (h *ApplicationHandler) TranscribeAudio(c *fiber.Ctx) error {
	if h.AIClient == nil {
		return h.respondErr(c, apperr.New(apperr.CodeTranscriptionFailed, "OpenAI API key is not configured"), apperr.CodeTranscriptionFailed)
	}
	ctx := c.UserContext()

	work, err := jobctx.New("", "transcribe-"+uuid.NewString())
	if err != nil {
		return h.respondErr(c, err, apperr.CodeInternal)
	}
	defer func() {
		if err := work.Cleanup(); err != nil {
			h.Logger.WithError(err).Warn("Failed to remove transcription scratch dir")
		}
	}()

	file, err := h.receiveAudio(c, work.Dir)
	if err != nil {
		return h.respondErr(c, err, apperr.CodeTranscriptionFailed)
	}
	log := h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"file":       file.Name,
		"size":       file.Size,
	})

	var probed float64
	audioPath := file.Path
	if h.Media != nil {
		if probed, err = h.Media.ProbeDuration(ctx, file.Path); err != nil {
			log.WithError(err).Warn("ffprobe failed, falling back to the duration estimate")
		}
		mp3 := work.Path("transcode.mp3")
		if err := h.Media.TranscodeToMP3(ctx, file.Path, mp3); err != nil {
			log.WithError(err).Warn("mp3 transcode failed, sending the original file")
		} else {
			audioPath = mp3
		}
	}

	tr, err := h.AIClient.Transcribe(ctx, audioPath)
	if err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeTranscriptionFailed, "transcription failed", err), apperr.CodeTranscriptionFailed)
	}

	measured := probed
	if measured <= 0 {
		measured = tr.Duration
	}
	total, source := duration.EstimateWithSource(duration.Input{Authoritative: measured, FileSizeBytes: file.Size}, duration.DefaultConfig())

	segments := captions.Build(tr.Text, total, tr.Segments, captions.DefaultConfig())
	log.WithFields(logrus.Fields{
		"duration":        total,
		"duration_source": source,
		"segments":        len(segments),
	}).Info("Transcription completed")

	return utils.RespondWithJSON(c, fiber.StatusOK, models.TranscriptionResponse{
		Transcript:     tr.Text,
		Duration:       total,
		DurationSource: string(source),
		Segments:       segments,
		Language:       tr.Language,
	})
}

// receiveAudio stores the request's audio in dir, whichever way it was sent.
func (h *ApplicationHandler) receiveAudio(c *fiber.Ctx, dir string) (*audiosource.File, error) {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		for _, field := range []string{"audio", "file"} {
			if fh, err := c.FormFile(field); err == nil {
				return h.saveUpload(fh, dir)
			}
		}
		if u := strings.TrimSpace(c.FormValue("audioUrl")); u != "" {
			return h.fetchURL(c, u, dir)
		}
		return nil, apperr.New(apperr.CodeNoAudioInput, "an audio file or audioUrl is required")

	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		var req TranscribeURLRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, apperr.Wrap(apperr.CodeInvalidRequest, "cannot parse request body", err)
		}
		u := strings.TrimSpace(req.URL)
		if u == "" {
			u = strings.TrimSpace(req.AudioURL)
		}
		if u == "" {
			return nil, apperr.New(apperr.CodeNoAudioInput, "url is required")
		}
		return h.fetchURL(c, u, dir)
	}
	return nil, apperr.New(apperr.CodeInvalidContentType, "Content-Type must be multipart/form-data or application/json")
}

func (h *ApplicationHandler) fetchURL(c *fiber.Ctx, rawURL, dir string) (*audiosource.File, error) {
	if err := h.Validate.Var(rawURL, "url"); err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidRequest, "invalid audio URL", err)
	}
	return h.fetchAudio(c.UserContext(), rawURL, dir)
}
