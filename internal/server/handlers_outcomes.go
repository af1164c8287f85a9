package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/library"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/server/middleware"
)

// handleRecordOutcome appends an interview outcome to a response
func (s *Server) handleRecordOutcome(w http.ResponseWriter, r *http.Request) {
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

	var input library.OutcomeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := s.library.RecordOutcome(r.Context(), userID, responseID, input)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, outcome)
}

// handleMetrics returns aggregated usage statistics for a response
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
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

	metrics, err := s.library.GetMetrics(r.Context(), userID, responseID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, metrics)
}
