package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/server/middleware"
)

// handleVersionHistory returns the full version chain, newest first
func (s *Server) handleVersionHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	responseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid response ID")
		return
	}

	versions, err := s.library.VersionHistory(r.Context(), userID, responseID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"versions": versions,
		"count":    len(versions),
	})
}

// handleRestoreVersion repoints the current version back to an earlier one.
// No new version row is created.
func (s *Server) handleRestoreVersion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	responseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid response ID")
		return
	}
	versionID, err := uuid.Parse(r.PathValue("version_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid version ID")
		return
	}

	resp, err := s.library.RestoreVersion(r.Context(), userID, responseID, versionID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
