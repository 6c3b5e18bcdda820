package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/common/logger"
)

// RequestID assigns each request an id, honoring one supplied by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorHandler recovers panics and renders them as internal errors.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := getRequestID(c)

		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithRequestID(requestID).
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		AbortWithError(c, appErr)
	})
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
	Method    string           `json:"method,omitempty"`
}

// AbortWithError renders any error through the AppError mapping. Non-App
// errors become internal errors so nothing leaks raw.
func AbortWithError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "Internal server error")
	}

	requestID := getRequestID(c)
	appErr.WithRequestID(requestID).
		WithContext("path", c.Request.URL.Path).
		WithContext("method", c.Request.Method)

	logEvent := logger.Warn()
	if appErr.Code == errors.ErrCodeInternal || appErr.Code == errors.ErrCodeDatabaseError {
		logEvent = logger.Error()
	}
	logEvent.
		Str("request_id", requestID).
		Str("code", string(appErr.Code)).
		Err(appErr).
		Msg("Request failed")

	// Stack traces stay in logs, not in responses.
	appErr.Stack = nil

	c.AbortWithStatusJSON(httpStatus(appErr), ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
	})
}

func httpStatus(appErr *errors.AppError) int {
	switch {
	case appErr.IsValidation(), appErr.Code == errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case appErr.Code == errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.Code == errors.ErrCodeForbidden:
		return http.StatusForbidden
	case appErr.IsNotFound():
		return http.StatusNotFound
	case appErr.IsConflict():
		return http.StatusConflict
	case appErr.IsRetryable():
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
