package handlers

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/kenaxel/standfm2movie/api-gateway/middleware"
	"github.com/kenaxel/standfm2movie/api-gateway/models"
	"github.com/kenaxel/standfm2movie/api-gateway/utils"
	"github.com/kenaxel/standfm2movie/internal/apperr"
	"github.com/kenaxel/standfm2movie/internal/renderjob"
)

// SubmitVideoResponse is returned when a render job was queued.
type SubmitVideoResponse struct {
	JobID     string `json:"jobId"`
	Status    string `json:"status"`
	StatusURL string `json:"statusUrl"`
}

// CreateVideo godoc
// @Summary Queue a video render
// @Description Validates the render request and stores it as a PENDING job for the video processor.
// @Tags videos
// @Accept json
// @Produce json
// @Param request body renderjob.Request true "Render request"
// @Success 202 {object} SubmitVideoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /videos [post]
func (h *ApplicationHandler) CreateVideo(c *fiber.Ctx) error {
	var req renderjob.Request
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	if err := req.Validate(); err != nil {
		code := apperr.CodeInvalidRequest
		if errors.Is(err, renderjob.ErrInvalidAudioInput) {
			code = apperr.CodeNoAudioInput
		}
		return h.respondErr(c, apperr.Wrap(code, err.Error(), err), code)
	}
	if req.Audio.Kind == renderjob.AudioTempFile {
		if _, err := os.Stat(filepath.Join(h.Settings.UploadDir, filepath.FromSlash(req.Audio.Path))); err != nil {
			return h.respondErr(c, apperr.Wrap(apperr.CodeNoAudioInput, "uploaded audio file not found", err), apperr.CodeNoAudioInput)
		}
	}
	if h.DB == nil {
		return h.respondErr(c, apperr.New(apperr.CodeInternal, "job store is not configured"), apperr.CodeInternal)
	}

	req.Settings = req.Settings.WithDefaults()
	jobID, err := h.DB.CreateJob(renderjob.JobType, req)
	if err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeVideoGenerationFailed, "could not queue render job", err), apperr.CodeVideoGenerationFailed)
	}

	log := h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"job_id":     jobID,
		"project_id": req.ProjectID,
		"format":     req.Settings.Format,
	})
	if req.ProjectID != "" {
		if err := h.DB.UpdateProjectStatus(req.ProjectID, models.ProjectProcessing, ""); err != nil {
			log.WithError(err).Warn("Could not mark project as processing")
		}
	}
	if req.UserID != "" {
		if err := h.DB.IncrementAPICalls(req.UserID); err != nil {
			log.WithError(err).Warn("Could not record API usage")
		}
	}
	log.Info("Render job queued")

	return utils.RespondWithJSON(c, fiber.StatusAccepted, SubmitVideoResponse{
		JobID:     jobID,
		Status:    renderjob.StatusPending,
		StatusURL: "/api/v1/jobs/" + jobID,
	})
}

// GetOutputFile godoc
// @Summary Stream a rendered video
// @Description Serves a file from the output directory with HTTP Range support and caching disabled.
// @Tags videos
// @Produce video/mp4
// @Param filename path string true "Output file name"
// @Success 200 {file} file
// @Success 206 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /output/{filename} [get]
func (h *ApplicationHandler) GetOutputFile(c *fiber.Ctx) error {
	name := c.Params("filename")
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return h.respondErr(c, apperr.New(apperr.CodeInvalidRequest, "invalid file name"), apperr.CodeInvalidRequest)
	}

	path := filepath.Join(h.Settings.OutputDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return h.respondErr(c, apperr.New(apperr.CodeNotFound, "file not found"), apperr.CodeNotFound)
	}

	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set(fiber.HeaderAcceptRanges, "bytes")
	return c.SendFile(path)
}
