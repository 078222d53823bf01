package apperrors

import (
	"errors"
	"fmt"
)

// Input and lookup failures. Nothing is sent to the remote store when one of these is returned.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrValidation      = errors.New("validation failed")

	ErrConfirmationRequired = errors.New("explicit confirmation is required")
)

// Session failures.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Business rules and state conflicts.
var (
	ErrConflict      = errors.New("resource conflict")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrPendingDebtExists = fmt.Errorf("%w: customer already has a pending debt", ErrConflict)
	ErrMutationInFlight  = fmt.Errorf("%w: another change to this record is still in progress", ErrConflict)
)

// Backend failures.
var (
	ErrDatabase       = errors.New("database error")
	ErrRemote         = errors.New("remote store error")
	ErrInternalServer = errors.New("internal server error")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

// NewValidationError matches both ErrValidation and *ValidationError.
func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// FieldOf returns the offending field of a validation error, or "".
func FieldOf(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	return ""
}

// AppError carries a stable code and a message that is safe to show to the user.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WrapRemoteError keeps the backend's raw error text in the message so it can be shown to the user.
func WrapRemoteError(cause error, message string) error {
	text := message
	if cause != nil {
		text = fmt.Sprintf("%s: %s", message, cause.Error())
	}
	return &AppError{
		Code:    "REMOTE_ERROR",
		Message: text,
		Cause:   fmt.Errorf("%w: %w", ErrRemote, cause),
	}
}

// IsClientError reports whether err was caused by the request rather than by
// the service or one of its backends.
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrInvalidArgument,
		ErrNotFound,
		ErrConfirmationRequired,
		ErrUnauthorized,
		ErrForbidden,
		ErrConflict,
		ErrAlreadyExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
