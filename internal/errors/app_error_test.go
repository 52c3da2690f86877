package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		sentinel error
		status   int
	}{
		{"empty input", NewEmptyInputError("no data"), ErrEmptyInput, http.StatusBadRequest},
		{"format", NewFormatError("bad"), ErrFormat, http.StatusBadRequest},
		{"field format", NewFieldFormatError("price", "not a number"), ErrFormat, http.StatusBadRequest},
		{"validation", NewValidationError("brand", "empty"), ErrValidation, http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("missing"), ErrNotFound, http.StatusNotFound},
		{"internal", NewInternalError(fmt.Errorf("boom")), ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.status, tt.err.StatusCode)

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestAppError_IsDoesNotCrossKinds(t *testing.T) {
	err := NewFormatError("bad")
	assert.False(t, stderrors.Is(err, ErrValidation))
	assert.False(t, stderrors.Is(err, ErrEmptyInput))
}

func TestAppError_Message(t *testing.T) {
	assert.Equal(t, `value is not a number (field "price")`, NewFieldFormatError("price", "value is not a number").Error())
	assert.Equal(t, "Internal server error: boom", NewInternalError(fmt.Errorf("boom")).Error())
}

func TestAsAppError(t *testing.T) {
	assert.Nil(t, AsAppError(nil))

	original := NewValidationError("model", "empty")
	assert.Same(t, original, AsAppError(fmt.Errorf("wrap: %w", original)))

	plain := AsAppError(fmt.Errorf("plain"))
	assert.Equal(t, KindInternal, plain.Kind)
	assert.Equal(t, http.StatusInternalServerError, plain.StatusCode)
}
