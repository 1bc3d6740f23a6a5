package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kenaxel/standfm2movie/api-gateway/internal/store"
	"github.com/kenaxel/standfm2movie/api-gateway/models"
	"github.com/kenaxel/standfm2movie/api-gateway/utils"
	"github.com/kenaxel/standfm2movie/internal/apperr"
)

// ProjectSuccessResponse defines the structure for a successful response for a single project.
type ProjectSuccessResponse struct {
	Status string              `json:"status"`
	Data   models.VideoProject `json:"data"`
}

// ProjectListSuccessResponse defines the structure for a successful response when listing projects.
type ProjectListSuccessResponse struct {
	Status string                `json:"status"`
	Data   []models.VideoProject `json:"data"`
}

// ListProjects godoc
// @Summary List video projects
// @Description Lists the newest video projects of a user.
// @Tags projects
// @Produce json
// @Param user_id query string true "User ID"
// @Param limit query int false "Maximum number of projects (default 20)"
// @Success 200 {object} ProjectListSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects [get]
func (h *ApplicationHandler) ListProjects(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		return h.respondErr(c, apperr.New(apperr.CodeInvalidRequest, "user_id is required"), apperr.CodeInvalidRequest)
	}
	limit := c.QueryInt("limit", store.DefaultProjectLimit)
	if limit <= 0 || limit > 100 {
		limit = store.DefaultProjectLimit
	}
	if h.DB == nil {
		return h.respondErr(c, apperr.New(apperr.CodeInternal, "project store is not configured"), apperr.CodeInternal)
	}

	projects, err := h.DB.ListProjects(userID, limit)
	if err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeInternal, "could not list projects", err), apperr.CodeInternal)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, projects)
}

// GetProject godoc
// @Summary Get a video project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} ProjectSuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{id} [get]
func (h *ApplicationHandler) GetProject(c *fiber.Ctx) error {
	if h.DB == nil {
		return h.respondErr(c, apperr.New(apperr.CodeInternal, "project store is not configured"), apperr.CodeInternal)
	}
	project, err := h.DB.GetProject(c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return h.respondErr(c, apperr.New(apperr.CodeNotFound, "project not found"), apperr.CodeNotFound)
	}
	if err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeInternal, "could not retrieve project", err), apperr.CodeInternal)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, project)
}

// GetUsage godoc
// @Summary Get usage counters of a user
// @Tags projects
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.UserUsage
// @Failure 404 {object} ErrorResponse
// @Router /usage/{userId} [get]
func (h *ApplicationHandler) GetUsage(c *fiber.Ctx) error {
	if h.DB == nil {
		return h.respondErr(c, apperr.New(apperr.CodeInternal, "usage store is not configured"), apperr.CodeInternal)
	}
	usage, err := h.DB.GetUsage(c.Params("userId"))
	if errors.Is(err, store.ErrNotFound) {
		return h.respondErr(c, apperr.New(apperr.CodeNotFound, "usage not found"), apperr.CodeNotFound)
	}
	if err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeInternal, "could not retrieve usage", err), apperr.CodeInternal)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, usage)
}
