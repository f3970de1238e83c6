package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found (or is outside the caller's tenant).
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrDependencyFailure indicates that an external collaborator (fee hook, notifier) failed.
var ErrDependencyFailure = errors.New("dependency failure")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned for unexpected failures whose details must not leak to callers.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code, a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError returns an AppError that matches ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrConflict}
}

// NewDependencyError wraps a collaborator failure so that it matches ErrDependencyFailure
// while keeping the original cause reachable through errors.Is/As.
func NewDependencyError(message string, cause error) error {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: message,
		Err:     fmt.Errorf("%w: %w", ErrDependencyFailure, cause),
	}
}

// StatusCode maps an error onto the HTTP status the handlers should answer with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDependencyFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
