// Package errors provides unified error handling across the srs-wizard system.
//
// SYSTEM ARCHITECTURE ROLE:
// Every front end (terminal wizard, CLI, HTTP API) reports failures through the same AppError
// type so that a validation gate, a render failure or a bad request body look alike no matter
// where they surface.
//
// KEY RESPONSIBILITIES:
// - Define error codes and categories for the wizard domain
// - Provide structured errors (AppError) with severity and context
// - Let each interface format the same core error data its own way
//
// INTEGRATION POINTS:
// - internal/validation: ValidationResult.ToAppError() reports an incomplete wizard step
// - internal/editor: out-of-range list edits return INVALID_INPUT
// - internal/pdf, internal/service: render failures become RENDER_FAILED
// - internal/api: HTTPErrorHandler maps AppErrors to status codes and JSON
// - internal/cli: CLIErrorHandler prints AppErrors to the terminal
// - internal/ui: TUIErrorHandler styles AppErrors as notifications
//
// USAGE PATTERNS:
// - Create errors: constructor functions like ValidationError(), NotFoundError()
// - Wrap errors: Wrap() to attach a code and message to an underlying error
// - Check types: IsAppError() and GetAppError()
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField      ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat     ErrorCode = "INVALID_FORMAT"
	ErrCodeIncompleteSection ErrorCode = "INCOMPLETE_SECTION"

	// Service errors
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotImplemented   ErrorCode = "NOT_IMPLEMENTED"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"

	// Resource errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Document errors
	ErrCodeRenderFailed     ErrorCode = "RENDER_FAILED"
	ErrCodeRenderInProgress ErrorCode = "RENDER_IN_PROGRESS"

	// Storage errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"

	// Command errors
	ErrCodeCommandFailed       ErrorCode = "COMMAND_FAILED"
	ErrCodeLauncherUnavailable ErrorCode = "LAUNCHER_UNAVAILABLE"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryService    ErrorCategory = "service"
	CategoryDocument   ErrorCategory = "document"
	CategoryStorage    ErrorCategory = "storage"
	CategoryCommand    ErrorCategory = "command"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Retryable bool                   `json:"retryable"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether the error is retryable
func (e *AppError) IsRetryable() bool {
	return e.Retryable
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInvalidFormat, ErrCodeIncompleteSection:
		return CategoryValidation, SeverityWarning

	case ErrCodeInternalError:
		return CategoryService, SeverityCritical
	case ErrCodeNotImplemented, ErrCodeNotFound, ErrCodeMethodNotAllowed:
		return CategoryService, SeverityInfo

	case ErrCodeRenderFailed:
		return CategoryDocument, SeverityError
	case ErrCodeRenderInProgress:
		return CategoryDocument, SeverityInfo

	case ErrCodeStorageFailure:
		return CategoryStorage, SeverityError
	case ErrCodeFileNotFound:
		return CategoryStorage, SeverityInfo

	case ErrCodeCommandFailed:
		return CategoryCommand, SeverityError
	case ErrCodeLauncherUnavailable:
		return CategoryCommand, SeverityWarning

	default:
		return CategorySystem, SeverityError
	}
}

// Render failures are never retried automatically; the user triggers a new attempt.
func isRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeStorageFailure, ErrCodeRenderInProgress:
		return true
	default:
		return false
	}
}

// IsAppError checks if an error is (or wraps) an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// HasCode reports whether err carries the given code
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// Common error constructors for frequently used errors
func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func InvalidInputError(message string) *AppError {
	return NewAppError(ErrCodeInvalidInput, message)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("Storage operation failed: %s", operation))
}

// RenderError reports a failed document generation.
func RenderError(err error) *AppError {
	return Wrap(err, ErrCodeRenderFailed, "PDF Generation Failed")
}

// RenderInProgressError is returned when a second generation is requested before the first
// one returns.
func RenderInProgressError() *AppError {
	return NewAppError(ErrCodeRenderInProgress, "A document is already being generated")
}

func MethodNotAllowedError(method string) *AppError {
	return NewAppError(ErrCodeMethodNotAllowed, fmt.Sprintf("Method %s not allowed", method))
}

func CommandError(command string, err error) *AppError {
	return Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("Command '%s' failed", command))
}
