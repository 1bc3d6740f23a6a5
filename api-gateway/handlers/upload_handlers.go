package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/kenaxel/standfm2movie/api-gateway/utils"
	"github.com/kenaxel/standfm2movie/internal/apperr"
	"github.com/kenaxel/standfm2movie/internal/audiosource"
	"github.com/kenaxel/standfm2movie/internal/renderjob"
)

// AudioFileResponse describes an audio file stored in the upload directory.
// Audio can be passed unchanged as the audio input of a render request.
type AudioFileResponse struct {
	FilePath     string               `json:"filePath"`
	FileName     string               `json:"fileName"`
	UniqueID     string               `json:"uniqueId"`
	OriginalName string               `json:"originalName,omitempty"`
	OriginalURL  string               `json:"originalUrl,omitempty"`
	Size         int64                `json:"size"`
	Audio        renderjob.AudioInput `json:"audio"`
}

// DownloadAudioRequest is the body of POST /audio/download.
type DownloadAudioRequest struct {
	URL string `json:"url" validate:"required,url"`
}

func audioFileResponse(f *audiosource.File, originalName string) AudioFileResponse {
	return AudioFileResponse{
		FilePath:     f.Name,
		FileName:     f.Name,
		UniqueID:     f.ID,
		OriginalName: originalName,
		OriginalURL:  f.OriginalURL,
		Size:         f.Size,
		Audio:        renderjob.TempFile(f.Name),
	}
}

// UploadAudio godoc
// @Summary Upload a temporary audio file
// @Description Stores the multipart field "audioFile" in the upload directory for a later render job.
// @Tags audio
// @Accept multipart/form-data
// @Produce json
// @Param audioFile formData file true "Audio file"
// @Success 201 {object} AudioFileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /audio/upload [post]
func (h *ApplicationHandler) UploadAudio(c *fiber.Ctx) error {
	fh, err := c.FormFile("audioFile")
	if err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeNoAudioInput, "audio file is required", err), apperr.CodeNoAudioInput)
	}

	f, err := h.saveUpload(fh, h.Settings.UploadDir)
	if err != nil {
		return h.respondErr(c, err, apperr.CodeInternal)
	}

	h.Logger.WithFields(map[string]interface{}{"file": f.Name, "size": f.Size}).Info("Stored uploaded audio")
	return utils.RespondWithJSON(c, fiber.StatusCreated, audioFileResponse(f, fh.Filename))
}

// DownloadAudio godoc
// @Summary Download remote audio
// @Description Downloads an audio URL or a stand.fm episode page into the upload directory.
// @Tags audio
// @Accept json
// @Produce json
// @Param request body DownloadAudioRequest true "Audio URL"
// @Success 201 {object} AudioFileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /audio/download [post]
func (h *ApplicationHandler) DownloadAudio(c *fiber.Ctx) error {
	var req DownloadAudioRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	f, err := h.fetchAudio(c.UserContext(), req.URL, h.Settings.UploadDir)
	if err != nil {
		return h.respondErr(c, err, apperr.CodeInternal)
	}

	h.Logger.WithFields(map[string]interface{}{"file": f.Name, "size": f.Size, "url": req.URL}).Info("Stored downloaded audio")
	return utils.RespondWithJSON(c, fiber.StatusCreated, audioFileResponse(f, ""))
}

// saveUpload checks an uploaded file against the size cap and the allowed
// extensions and copies it into dir.
func (h *ApplicationHandler) saveUpload(fh *multipart.FileHeader, dir string) (*audiosource.File, error) {
	if fh.Size > h.Settings.MaxAudioBytes {
		return nil, apperr.New(apperr.CodeAudioTooLarge, "audio file exceeds the size limit")
	}
	if !audiosource.AllowedExtension(fh.Filename) {
		return nil, apperr.New(apperr.CodeInvalidFormat, "unsupported audio format")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "cannot open uploaded file", err)
	}
	defer src.Close()

	f, err := audiosource.Save(src, dir, filepath.Ext(fh.Filename), h.Settings.MaxAudioBytes)
	if errors.Is(err, audiosource.ErrTooLarge) {
		return nil, apperr.Wrap(apperr.CodeAudioTooLarge, "audio file exceeds the size limit", err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "cannot store uploaded file", err)
	}
	f.ContentType = fh.Header.Get(fiber.HeaderContentType)
	return f, nil
}

// fetchAudio downloads rawURL into dir, translating audiosource errors into codes.
func (h *ApplicationHandler) fetchAudio(ctx context.Context, rawURL, dir string) (*audiosource.File, error) {
	if h.Audio == nil {
		return nil, apperr.New(apperr.CodeInternal, "audio download is not configured")
	}
	f, err := h.Audio.Fetch(ctx, rawURL, dir)
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
	return nil, apperr.Wrap(apperr.CodeInternal, "audio download failed", err)
}
