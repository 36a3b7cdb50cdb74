package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindBackend      ErrorKind = "backend"
)

// ErrorResponse is the JSON error body returned by every handler.
type ErrorResponse struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Error   string    `json:"error,omitempty"`
}

// AppError is the single tagged error type handlers return, so that
// validation, not-found, conflict and backend failures stay distinct all
// the way to the HTTP status.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Backend(message string, err error) *AppError {
	return &AppError{Kind: KindBackend, Message: message, Err: err}
}

func statusFor(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail writes err as an ErrorResponse with the status its kind maps to.
// Errors that are not AppError are treated as backend failures.
func Fail(c *fiber.Ctx, err error) error {
	var app *AppError
	if !errors.As(err, &app) {
		app = Backend("unexpected error", err)
	}
	body := ErrorResponse{Kind: app.Kind, Message: app.Message}
	if app.Err != nil {
		body.Error = app.Err.Error()
	}
	return c.Status(statusFor(app.Kind)).JSON(body)
}
