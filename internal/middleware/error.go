package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"grievance-portal/internal/service"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler converts errors bubbling out of handlers into the portal's
// JSON error envelope. Input validation failures from the service layer map
// to 422 here, so handlers only translate their own domain sentinels.
// Anything unrecognised becomes an opaque 500 with the detail kept in the
// server log, keyed by trace_id.
func ErrorHandler(c *fiber.Ctx, err error) error {
	traceID := uuid.New().String()[:8]

	if errors.Is(err, service.ErrValidation) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
			TraceID: traceID,
		})
	}

	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message

		switch code {
		case fiber.StatusBadRequest:
			errorCode = "BAD_REQUEST"
		case fiber.StatusUnauthorized:
			errorCode = "UNAUTHORIZED"
		case fiber.StatusForbidden:
			errorCode = "FORBIDDEN"
		case fiber.StatusNotFound:
			errorCode = "NOT_FOUND"
		case fiber.StatusConflict:
			errorCode = "CONFLICT"
		case fiber.StatusUnprocessableEntity:
			errorCode = "VALIDATION_ERROR"
		case fiber.StatusServiceUnavailable:
			errorCode = "SERVICE_UNAVAILABLE"
		}
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", traceID, c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
