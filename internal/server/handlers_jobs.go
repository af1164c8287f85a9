package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/ingest"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/server/middleware"
)

// handleCreateJob registers a job. The description can be supplied inline
// or fetched from a posting URL.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Company     string `json:"company" validate:"required"`
		Position    string `json:"position" validate:"required"`
		Description string `json:"description,omitempty"`
		SourceURL   string `json:"source_url,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	description := req.Description
	if strings.TrimSpace(description) == "" && req.SourceURL != "" {
		fetched, err := ingest.FetchPostingText(&http.Client{Timeout: 15 * time.Second}, req.SourceURL)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "failed to fetch job posting: "+err.Error())
			return
		}
		description = fetched
	}
	if strings.TrimSpace(description) == "" {
		s.errorResponse(w, http.StatusBadRequest, "description or source_url is required")
		return
	}

	var sourceURL *string
	if req.SourceURL != "" {
		sourceURL = &req.SourceURL
	}

	job, err := s.db.CreateJob(r.Context(), userID, req.Company, req.Position, description, sourceURL)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleGetJob returns a single stored job
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job ID")
		return
	}

	job, err := s.db.GetJob(r.Context(), id, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleListJobs returns all of the caller's jobs
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobs, err := s.db.ListJobs(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}
