package middleware

import (
	"errors"
	"net/http"
	"strings"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool                   `json:"success"`
	Error   int                    `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
	http.StatusServiceUnavailable:  "service unavailable",
}

// StatusMessage returns the envelope message for an HTTP status.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return strings.ToLower(http.StatusText(status))
}

// NewErrorResponse builds the envelope for status with optional details.
func NewErrorResponse(status int, details map[string]interface{}) ErrorResponse {
	resp := ErrorResponse{
		Success: false,
		Error:   status,
		Message: StatusMessage(status),
	}
	if len(details) > 0 {
		resp.Details = details
	}
	return resp
}

// ErrorHandler is a centralized error handler installed as fiber.Config.ErrorHandler
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(zap.String("request_id", requestID(c)))

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) && !isDomainError(err) {
			log.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusUnprocessableEntity).JSON(NewErrorResponse(
				http.StatusUnprocessableEntity,
				map[string]interface{}{"errors": []domain.ValidationError(validationErrs)},
			))
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := mapDomainErrorToHTTPStatus(domainErr)

			fields := []zap.Field{
				zap.String("path", c.Path()),
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", status),
			}
			if domainErr.Cause != nil {
				fields = append(fields, zap.Error(domainErr.Cause))
			}
			if status >= http.StatusInternalServerError {
				log.Error("Domain error occurred", fields...)
				return c.Status(status).JSON(NewErrorResponse(status, nil))
			}
			log.Warn("Domain error occurred", fields...)

			details := make(map[string]interface{}, len(domainErr.Context)+1)
			for k, v := range domainErr.Context {
				details[k] = v
			}
			details["reason"] = domainErr.Message
			return c.Status(status).JSON(NewErrorResponse(status, details))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			var details map[string]interface{}
			if fiberErr.Message != "" && !strings.EqualFold(fiberErr.Message, http.StatusText(fiberErr.Code)) {
				details = map[string]interface{}{"reason": fiberErr.Message}
			}
			return c.Status(fiberErr.Code).JSON(NewErrorResponse(fiberErr.Code, details))
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(NewErrorResponse(http.StatusInternalServerError, nil))
	}
}

func isDomainError(err error) bool {
	var domainErr *domain.DomainError
	return errors.As(err, &domainErr)
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeBadRequest:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeUnprocessable:
		return http.StatusUnprocessableEntity
	case domain.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
