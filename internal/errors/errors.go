package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
		Code:    "UNAUTHORIZED",
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    "NOT_FOUND",
	}
}

// NewConflictError creates a new uniqueness conflict error
func NewConflictError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
		Code:    "CONFLICT",
		Cause:   cause,
	}
}

// NewStoreValidationError creates an error for field constraints rejected
// by the persistence layer. All per-field messages are concatenated into
// one combined message.
func NewStoreValidationError(messages []string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStoreValidation,
		Message: fmt.Sprintf("Validation Error: %s", strings.Join(messages, ", ")),
		Code:    "STORE_VALIDATION_FAILED",
		Cause:   cause,
	}
}

// NewUnknownError creates a new unknown error
func NewUnknownError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeUnknown,
		Message: message,
		Code:    "UNKNOWN_ERROR",
		Cause:   cause,
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// Describe renders an arbitrary failure as text for wrapping into an
// unknown error. The error's own message is used when it has one,
// otherwise a stringified form of the value.
func Describe(err error) string {
	if err == nil {
		return "null"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fmt.Sprintf("%#v", err)
}

// UserMessage returns the human-readable message carried by the error
func UserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
