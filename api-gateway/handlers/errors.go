package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/kenaxel/standfm2movie/api-gateway/middleware"
	"github.com/kenaxel/standfm2movie/api-gateway/utils"
	"github.com/kenaxel/standfm2movie/internal/apperr"
)

// ErrorResponse defines a common structure for error responses.
type ErrorResponse struct {
	Status  string      `json:"status"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeAudioTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case apperr.CodeInvalidFormat, apperr.CodeNoAudioInput, apperr.CodeInvalidContentType,
		apperr.CodeMissingQuery, apperr.CodeInvalidRequest:
		return fiber.StatusBadRequest
	case apperr.CodeAudioURLNotFound, apperr.CodeNotFound:
		return fiber.StatusNotFound
	case apperr.CodeTimeout:
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

// respondErr logs err and writes it as an API error. The code is taken from
// err when it carries one, otherwise fallback is used.
func (h *ApplicationHandler) respondErr(c *fiber.Ctx, err error, fallback apperr.Code) error {
	code := apperr.CodeOf(err, fallback)
	status := StatusFor(code)

	message := err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Message != "" {
		message = ae.Message
	}

	entry := h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"code":       code,
		"path":       c.Path(),
	}).WithError(err)
	if status >= fiber.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}
	return utils.RespondWithAPIError(c, status, code, message, nil)
}

// bind parses the JSON body into dst and validates it. On failure the 400
// response has already been written and ok is false.
func (h *ApplicationHandler) bind(c *fiber.Ctx, dst interface{}) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		h.Logger.WithField("request_id", middleware.RequestID(c)).WithError(err).Warn("Cannot parse request body")
		return false, utils.RespondWithAPIError(c, fiber.StatusBadRequest, apperr.CodeInvalidRequest, "Cannot parse request body", nil)
	}
	if err := h.Validate.Struct(dst); err != nil {
		return false, utils.RespondWithAPIError(c, fiber.StatusBadRequest, apperr.CodeInvalidRequest,
			"Validation failed", utils.FormatValidationErrors(err))
	}
	return true, nil
}
