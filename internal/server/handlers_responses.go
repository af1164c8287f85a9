package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/feedback"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/library"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/server/middleware"
)

// responseWithFeedback is the create payload: the stored response plus the
// analysis computed for its first version.
type responseWithFeedback struct {
	Response *db.Response             `json:"response"`
	Feedback *feedback.AnswerFeedback `json:"feedback,omitempty"`
}

// handleCreateResponse creates a response with its first version
func (s *Server) handleCreateResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input library.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, fb, err := s.library.Create(r.Context(), userID, input)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, responseWithFeedback{Response: resp, Feedback: fb})
}

// handleGetResponse returns a single response with its tags
func (s *Server) handleGetResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid response ID")
		return
	}

	resp, err := s.library.Get(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListResponses returns the caller's responses, optionally filtered
// by question_type, question_category, is_favorite, and tags (CSV).
func (s *Server) handleListResponses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filters := db.ResponseFilters{
		QuestionType:     r.URL.Query().Get("question_type"),
		QuestionCategory: r.URL.Query().Get("question_category"),
	}
	if fav := r.URL.Query().Get("is_favorite"); fav != "" {
		val := fav == "true"
		filters.IsFavorite = &val
	}
	if tags := r.URL.Query().Get("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filters.Tags = append(filters.Tags, t)
			}
		}
	}

	responses, err := s.library.List(r.Context(), userID, filters)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"responses": responses,
		"count":     len(responses),
	})
}

// handleUpdateResponse updates response fields; a changed response_text
// appends a new version.
func (s *Server) handleUpdateResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid response ID")
		return
	}

	var input library.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.library.Update(r.Context(), userID, id, input)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDeleteResponse removes a response and all dependent rows
func (s *Server) handleDeleteResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid response ID")
		return
	}

	if err := s.library.Delete(r.Context(), userID, id); err != nil {
		s.serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
