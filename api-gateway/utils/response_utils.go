package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/kenaxel/standfm2movie/internal/apperr"
)

// RespondWithError sends a JSON error response.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// RespondWithAPIError sends a JSON error response carrying a machine readable code.
// details is omitted when nil.
func RespondWithAPIError(c *fiber.Ctx, statusCode int, code apperr.Code, message string, details interface{}) error {
	body := fiber.Map{
		"status":  "error",
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	return c.Status(statusCode).JSON(body)
}

// RespondWithJSON sends a JSON success response.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// FormatValidationErrors formats validation errors from validator/v10.
// Errors of any other type are returned as their message.
func FormatValidationErrors(err error) []string {
	var messages []string
	if err == nil {
		return messages
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	for _, fe := range verrs {
		element := fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			element = fmt.Sprintf("%s (value: %s)", element, fe.Param())
		}
		messages = append(messages, element)
	}
	return messages
}

// SanitizeInput trims surrounding whitespace from user supplied text.
func SanitizeInput(input string) string {
	return strings.TrimSpace(input)
}
