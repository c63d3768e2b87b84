package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
)

// maxSnapshotBytes bounds PUT bodies; photos travel inline as data URLs.
const maxSnapshotBytes = 10 << 20

// cvID reads and validates the {id} path value.
func cvID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if !persistence.ValidID(id) {
		return "", &ErrValidation{Field: "id", Message: fmt.Sprintf("invalid CV id %q", id)}
	}
	return id, nil
}

// fail writes err with the status HTTPStatus assigns to it. Server errors
// are logged and their details withheld.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// handleListCVs returns the summaries of every stored CV, most recent first
func (s *Server) handleListCVs(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.adapter.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []types.Summary{}
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleGetCV returns the stored snapshot of a CV
func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	id, err := cvID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	snap, err := s.adapter.Read(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, snap)
}

// handlePutCV stores a snapshot, replacing any previous one under the same id
func (s *Server) handlePutCV(w http.ResponseWriter, r *http.Request) {
	id, err := cvID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Snapshot too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	snap, err := persistence.Decode(id, body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid snapshot: "+err.Error())
		return
	}
	if snap.ID() != id {
		s.fail(w, r, &ErrValidation{Field: "cvData.id", Message: "does not match the URL"})
		return
	}

	if err := s.adapter.Write(r.Context(), snap); err != nil {
		s.fail(w, r, err)
		return
	}

	fields := []zap.Field{zap.String("id", id)}
	if clientID, err := middleware.GetClientID(r); err == nil {
		fields = append(fields, zap.String("client", clientID))
	}
	s.log.Debug("snapshot stored", fields...)

	s.jsonResponse(w, http.StatusOK, snap.Summary())
}

// handleDeleteCV removes a stored CV
func (s *Server) handleDeleteCV(w http.ResponseWriter, r *http.Request) {
	id, err := cvID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.adapter.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExport renders a stored CV as a downloadable file
func (s *Server) handleExport(format export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.exporter == nil {
			s.fail(w, r, &ErrExportUnavailable{})
			return
		}
		id, err := cvID(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		snap, err := s.adapter.Read(r.Context(), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		file, err := s.exporter.Export(r.Context(), snap, format)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(file.Data)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Data); err != nil {
			s.log.Warn("failed to write export", zap.String("id", id), zap.Error(err))
		}
	}
}
