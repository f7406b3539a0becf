package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found,
// or that it belongs to a different company (existence is not revealed).
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed a business precondition.
// The caller can recover by correcting the input.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the acting user lacks the required company role.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation is not valid for the entity's current state.
var ErrConflict = errors.New("conflict with current state")

// ErrConfiguration indicates a required ledger or tax mapping is missing.
// An administrator can recover by configuring the chart of accounts or GST mappings.
var ErrConfiguration = errors.New("configuration error")

// ErrConsistency indicates the books themselves are inconsistent (entries
// don't balance, outstanding would go negative). This points at an upstream
// bug and should be treated as fatal, never silently coerced.
var ErrConsistency = errors.New("consistency error")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with a status code and a message
// carrying enough context (entity id) to render a user-facing message.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// ValidationError collects every violated precondition for an operation,
// not just the first one. It matches ErrValidation via errors.Is.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError from the given reasons.
func NewValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

// NewConfigurationError creates an AppError that matches ErrConfiguration.
func NewConfigurationError(message string) *AppError {
	return &AppError{Code: 422, Message: message, Err: ErrConfiguration}
}

// NewConsistencyError creates an AppError that matches ErrConsistency.
func NewConsistencyError(message string) *AppError {
	return &AppError{Code: 500, Message: message, Err: ErrConsistency}
}
