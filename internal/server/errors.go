// Package server provides the HTTP registry for stored CVs.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/persistence"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrExportUnavailable indicates the server was started without an exporter
type ErrExportUnavailable struct{}

func (e *ErrExportUnavailable) Error() string {
	return "export is not available on this server"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var corrupt *persistence.CorruptSnapshotError
	var unavailable *ErrExportUnavailable
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &corrupt):
		return http.StatusUnprocessableEntity
	case errors.Is(err, persistence.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, export.ErrNoSurface):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
