// Package apperr carries machine readable error codes across the gateway and
// the render worker.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable identifier clients can switch on.
type Code string

const (
	CodeAudioTooLarge         Code = "AUDIO_TOO_LARGE"
	CodeInvalidFormat         Code = "INVALID_FORMAT"
	CodeTranscriptionFailed   Code = "TRANSCRIPTION_FAILED"
	CodeGenerationFailed      Code = "GENERATION_FAILED"
	CodeVideoGenerationFailed Code = "VIDEO_GENERATION_FAILED"
	CodeNoAudioInput          Code = "NO_AUDIO_INPUT"
	CodeInvalidContentType    Code = "INVALID_CONTENT_TYPE"
	CodeAudioURLNotFound      Code = "AUDIO_URL_NOT_FOUND"
	CodeMissingQuery          Code = "MISSING_QUERY"
	CodeSearchFailed          Code = "SEARCH_FAILED"
	CodeInvalidRequest        Code = "INVALID_REQUEST"
	CodeNotFound              Code = "NOT_FOUND"
	CodeTimeout               Code = "TIMEOUT"
	CodeInternal              Code = "INTERNAL_ERROR"
)

// Error attaches a Code to an underlying error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an Error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap tags err with code. It returns nil for a nil err.
func Wrap(code Code, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the first Code found in err's chain, or fallback.
func CodeOf(err error, fallback Code) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return fallback
}

// ParseMessage splits a stored "<CODE>: detail" message.
func ParseMessage(msg string) (Code, string) {
	code, detail, ok := strings.Cut(msg, ": ")
	if !ok || code == "" || strings.ToUpper(code) != code || strings.ContainsAny(code, " \t") {
		return "", msg
	}
	return Code(code), detail
}
