package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies a failure for the HTTP layer and for callers
// that need to branch on the kind of rejection.
type ErrorType string

const (
	// Recoverable form-level rejections
	ErrorTypeInvalidInput ErrorType = "INVALID_INPUT"
	ErrorTypeValidation   ErrorType = "VALIDATION"

	// Resource / authorization errors
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"

	// Infrastructure errors
	ErrorTypePersistence ErrorType = "PERSISTENCE"
	ErrorTypeInternal    ErrorType = "INTERNAL"
)

// AppError is the application-wide error value. Every operation in the
// core either returns a fully formed result or one of these; nothing is
// swallowed on the way up.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds structured details (e.g. shortfall amounts)
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Constructor functions for the error taxonomy

// NewInvalidInputError reports malformed or out-of-range input
// (quantities, dates, times). The caller redisplays the same form.
func NewInvalidInputError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewValidationError reports a business-rule rejection (balance too low,
// guest pay-now, closed day). Recoverable; same treatment as invalid input.
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError creates a conflict error (e.g. duplicate flavor name)
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a forbidden error (non-admin on an admin operation)
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewPersistenceError wraps a storage failure, including a failed atomic
// commit. Retryable from the caller's point of view; the unit of work has
// already rolled back, so no partial state is visible.
func NewPersistenceError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypePersistence,
		Message:    fmt.Sprintf("storage operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Helper functions

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsInvalidInput checks for a malformed-input error
func IsInvalidInput(err error) bool {
	return IsType(err, ErrorTypeInvalidInput)
}

// IsValidation checks for a business-rule rejection
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return IsType(err, ErrorTypeConflict)
}

// IsForbidden checks if an error is a forbidden error
func IsForbidden(err error) bool {
	return IsType(err, ErrorTypeForbidden)
}

// IsPersistence checks if an error is a storage failure
func IsPersistence(err error) bool {
	return IsType(err, ErrorTypePersistence)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	return NewInternalError(message, err)
}
