package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/server/middleware"
)

// handleCreatePractice records a practice session with comparative feedback
func (s *Server) handleCreatePractice(w http.ResponseWriter, r *http.Request) {
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
		PracticeText        string `json:"practice_text"`
		DeliveryTimeSeconds *int   `json:"delivery_time_seconds,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.coach.CreateSession(r.Context(), userID, responseID, req.PracticeText, req.DeliveryTimeSeconds)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, result)
}

// handleListPractice returns a response's practice history, newest first
func (s *Server) handleListPractice(w http.ResponseWriter, r *http.Request) {
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

	sessions, err := s.coach.ListSessions(r.Context(), userID, responseID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}
