package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "id", Message: "does not match path"}
	assert.Equal(t, "validation error: id - does not match path", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "body", Message: "empty"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrNotFound wrapped",
			err:      fmt.Errorf("failed to read: %w", persistence.ErrNotFound),
			expected: http.StatusNotFound,
		},
		{
			name:     "CorruptSnapshotError",
			err:      &persistence.CorruptSnapshotError{ID: "x", Cause: assert.AnError},
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "ErrNoSurface",
			err:      &export.Error{Op: "pdf", Message: "nothing to capture", Cause: export.ErrNoSurface},
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "ErrExportUnavailable",
			err:      &ErrExportUnavailable{},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
