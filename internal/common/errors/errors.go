package errors

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	// Generic errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"

	// Domain errors
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeContentNotFound ErrorCode = "CONTENT_NOT_FOUND"
	ErrCodeTokenNotFound   ErrorCode = "TOKEN_NOT_FOUND"
	ErrCodeInvalidCategory ErrorCode = "INVALID_CATEGORY"
	ErrCodeAlreadyReviewed ErrorCode = "ALREADY_REVIEWED"

	// Storage errors
	ErrCodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	ErrCodeTransactionFailed ErrorCode = "TRANSACTION_FAILED"

	// Cache errors
	ErrCodeCacheError ErrorCode = "CACHE_ERROR"

	// External collaborators
	ErrCodeLedgerError ErrorCode = "LEDGER_ERROR"
	ErrCodeExternalAPI ErrorCode = "EXTERNAL_API_ERROR"
)

// AppError is the typed application error carried across layers.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Context   map[string]string      `json:"context,omitempty"`
	Stack     []string               `json:"stack,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether the error is any of the not-found classes.
func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound ||
		e.Code == ErrCodeUserNotFound ||
		e.Code == ErrCodeContentNotFound ||
		e.Code == ErrCodeTokenNotFound
}

func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeInvalidCategory
}

func (e *AppError) IsConflict() bool {
	return e.Code == ErrCodeConflict || e.Code == ErrCodeAlreadyReviewed
}

// IsRetryable reports whether the caller may retry the same operation.
// Only external collaborator failures qualify; storage and domain errors
// must be surfaced as-is.
func (e *AppError) IsRetryable() bool {
	return e.Code == ErrCodeLedgerError || e.Code == ErrCodeExternalAPI
}

// WithContext attaches a request-scoped key/value pair.
func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithDetail attaches structured detail for the error payload.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// New creates a new application error with a captured stack.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Stack:     getStackTrace(),
	}
}

// Wrap wraps an existing error with an application code.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func getStackTrace() []string {
	var stack []string
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.Contains(fn.Name(), "internal/common/errors") {
			continue
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		if len(stack) >= 10 {
			break
		}
	}
	return stack
}

// Constructors for the common cases.

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

func NewUserNotFoundError(userID int64) *AppError {
	return New(ErrCodeUserNotFound, fmt.Sprintf("User not found: %d", userID)).
		WithDetail("user_id", userID)
}

func NewContentNotFoundError(contentID int64) *AppError {
	return New(ErrCodeContentNotFound, fmt.Sprintf("Content not found: %d", contentID)).
		WithDetail("content_id", contentID)
}

func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

func NewForbiddenError(reason string) *AppError {
	return New(ErrCodeForbidden, fmt.Sprintf("Forbidden: %s", reason)).
		WithDetail("reason", reason)
}

func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, fmt.Sprintf("Database operation failed: %s", operation)).
		WithDetail("operation", operation)
}

func NewCacheError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeCacheError, fmt.Sprintf("Cache operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewLedgerError marks a failed call to the external ledger service. The
// enclosing transaction must abort; the caller may retry the whole action.
func NewLedgerError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeLedgerError, fmt.Sprintf("Ledger operation failed: %s", operation)).
		WithDetail("operation", operation)
}

func NewConflictError(resource, reason string) *AppError {
	return New(ErrCodeConflict, fmt.Sprintf("Conflict with %s: %s", resource, reason)).
		WithDetail("resource", resource).
		WithDetail("reason", reason)
}

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError extracts an AppError if err is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
