package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthResponse reports gateway liveness and the processor's gRPC health.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Processor string `json:"processor"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	processor := "UNCONFIGURED"
	if h.Processor != nil {
		status, err := h.Processor.Check(c.UserContext())
		if err != nil {
			h.Logger.WithError(err).Warn("Video processor health check failed")
		}
		processor = status
	}
	return c.Status(fiber.StatusOK).JSON(HealthResponse{
		Status:    "ok",
		Message:   "API Gateway is healthy",
		Processor: processor,
	})
}
