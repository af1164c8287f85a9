package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/server/middleware"
)

// handleAddTags attaches tags to a response
func (s *Server) handleAddTags(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Tags []db.TagInput `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Tags) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "tags must not be empty")
		return
	}

	resp, err := s.library.AddTags(r.Context(), userID, responseID, req.Tags)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleRemoveTags detaches tags from a response by tag ID
func (s *Server) handleRemoveTags(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		TagIDs []uuid.UUID `json:"tag_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.TagIDs) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "tag_ids must not be empty")
		return
	}

	resp, err := s.library.RemoveTags(r.Context(), userID, responseID, req.TagIDs)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
