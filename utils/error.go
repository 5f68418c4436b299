package utils

import (
	"errors"
	"fmt"
	"net/http"

	"bikefix/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes for the domain error taxonomy. Every service-layer failure is
// one of these; the handler boundary maps them to HTTP statuses.
const (
	CodeValidation        = "VALIDATION"
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInternal          = "INTERNAL"
)

// APIError is a coded domain error.
type APIError struct {
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func NewValidationError(format string, args ...any) *APIError {
	return &APIError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *APIError {
	return &APIError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewForbiddenError(format string, args ...any) *APIError {
	return &APIError{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *APIError {
	return &APIError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidTransitionError names both the source and target states.
func NewInvalidTransitionError(from, to string) *APIError {
	return &APIError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("status transition from %q to %q is not allowed", from, to),
	}
}

func NewInternalError(msg string, err error) *APIError {
	return &APIError{Code: CodeInternal, Message: msg, Err: err}
}

func statusForCode(code string) int {
	switch code {
	case CodeValidation, CodeInvalidTransition:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Envelope is the uniform JSON response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// RespondOK writes a success envelope.
func RespondOK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// RespondMessage writes a success envelope carrying a message and data.
func RespondMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// RespondError converts any error into the envelope + HTTP status. Unknown
// errors become 500s; their detail is only exposed outside production.
func RespondError(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = NewInternalError("an unexpected error occurred", err)
	}

	status := statusForCode(apiErr.Code)
	body := Envelope{Success: false, Message: apiErr.Message}
	if apiErr.Code == CodeInternal {
		GetLogger().Error("internal error", zap.Error(err))
		if config.IsProduction() {
			body.Message = "an unexpected error occurred"
		} else if apiErr.Err != nil {
			body.Errors = apiErr.Err.Error()
		}
	}
	c.JSON(status, body)
}

// ErrorHandler is a middleware that catches panics and returns structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", r))
				c.JSON(http.StatusInternalServerError, Envelope{
					Success: false,
					Message: "Internal Server Error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
