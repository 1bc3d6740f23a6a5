package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kenaxel/standfm2movie/api-gateway/internal/store"
	"github.com/kenaxel/standfm2movie/api-gateway/models"
	"github.com/kenaxel/standfm2movie/api-gateway/utils"
	"github.com/kenaxel/standfm2movie/internal/apperr"
)

// GetJobStatus godoc
// @Summary Get render job status
// @Description Returns the status row of a render job. Failed jobs carry the error code split from the stored message.
// @Tags jobs
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} models.JobStatusView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /jobs/{jobId} [get]
func (h *ApplicationHandler) GetJobStatus(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if _, err := uuid.Parse(jobID); err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeInvalidRequest, "invalid job ID format", err), apperr.CodeInvalidRequest)
	}
	if h.DB == nil {
		return h.respondErr(c, apperr.New(apperr.CodeInternal, "job store is not configured"), apperr.CodeInternal)
	}

	job, err := h.DB.GetJob(jobID)
	if errors.Is(err, store.ErrNotFound) {
		return h.respondErr(c, apperr.New(apperr.CodeNotFound, "job not found"), apperr.CodeNotFound)
	}
	if err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeInternal, "could not retrieve job status", err), apperr.CodeInternal)
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, jobStatusView(job))
}

func jobStatusView(job *models.VideoJobStatus) models.JobStatusView {
	view := models.JobStatusView{
		JobID:     job.JobID,
		Status:    job.Status,
		Output:    job.OutputDetails,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
	if job.ErrorMessage != nil && *job.ErrorMessage != "" {
		code, detail := apperr.ParseMessage(*job.ErrorMessage)
		view.ErrorCode = string(code)
		view.ErrorMessage = detail
	}
	return view
}
