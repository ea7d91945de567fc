package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrUnauthorized = errors.New("unauthorized")

	ErrTooManyRequests = errors.New("too many requests")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ValidationErrors is an ordered batch of field failures. It is returned as a
// single error so callers never see a partial set.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ErrValidation.Error()
	case 1:
		return e[0].Error()
	}
	fields := make([]string, len(e))
	for i, v := range e {
		fields[i] = v.Field
	}
	return fmt.Sprintf("%s: %d errors (%s)", ErrValidation, len(e), strings.Join(fields, ", "))
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ByField groups messages per field, keeping the order in which they were added.
func (e ValidationErrors) ByField() map[string][]string {
	grouped := make(map[string][]string, len(e))
	for _, v := range e {
		grouped[v.Field] = append(grouped[v.Field], v.Message)
	}
	return grouped
}

func NewValidationError(field, message string) error {
	return ValidationErrors{{Field: field, Message: message}}
}

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

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}

func WrapUpstreamError(service, message string) error {
	return &AppError{
		Code:    "UPSTREAM_UNAVAILABLE",
		Message: fmt.Sprintf("%s: %s", service, message),
		Cause:   ErrUpstreamUnavailable,
	}
}
