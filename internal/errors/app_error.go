package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError.
type Kind int

const (
	KindInternal Kind = iota
	KindEmptyInput
	KindFormat
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty_input"
	case KindFormat:
		return "format"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Sentinels for errors.Is checks against an AppError of the same kind.
var (
	ErrEmptyInput = stderrors.New("empty input")
	ErrFormat     = stderrors.New("format error")
	ErrValidation = stderrors.New("validation error")
	ErrNotFound   = stderrors.New("not found")
	ErrInternal   = stderrors.New("internal error")
)

// AppError represents an application error
type AppError struct {
	Kind       Kind
	Field      string
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %q)", e.Message, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *AppError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *AppError) sentinel() error {
	switch e.Kind {
	case KindEmptyInput:
		return ErrEmptyInput
	case KindFormat:
		return ErrFormat
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	default:
		return ErrInternal
	}
}

// NewEmptyInputError creates an error for missing or blank input
func NewEmptyInputError(message string) *AppError {
	return &AppError{
		Kind:       KindEmptyInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewFormatError creates a structural or schema mismatch error
func NewFormatError(message string) *AppError {
	return &AppError{
		Kind:       KindFormat,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewFieldFormatError creates a format error naming the offending field
func NewFieldFormatError(field, message string) *AppError {
	return &AppError{
		Kind:       KindFormat,
		Field:      field,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewValidationError creates an entity invariant violation error
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Field:      field,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(err error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// AsAppError unwraps err into an AppError, wrapping unknown errors as internal.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
