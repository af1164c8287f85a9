package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/export"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/server/middleware"
)

// handleGaps reports coverage holes across the caller's library
func (s *Server) handleGaps(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	responses, err := s.library.List(r.Context(), userID, db.ResponseFilters{})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.analyzer.IdentifyGaps(responses))
}

// handleSuggest ranks responses against a job description. The description
// comes from a stored job (job_id) or directly from the question query
// parameter.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	description := r.URL.Query().Get("question")
	if jobIDParam := r.URL.Query().Get("job_id"); jobIDParam != "" {
		jobID, err := uuid.Parse(jobIDParam)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid job ID")
			return
		}
		job, err := s.db.GetJob(r.Context(), jobID, userID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to load job")
			return
		}
		if job == nil {
			s.errorResponse(w, http.StatusNotFound, "job not found")
			return
		}
		description = job.Description
	}
	if strings.TrimSpace(description) == "" {
		s.errorResponse(w, http.StatusBadRequest, "job_id or question is required")
		return
	}

	responses, err := s.library.List(r.Context(), userID, db.ResponseFilters{})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	suggestions := s.ranker.SuggestForJob(description, responses)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// handleExport builds a prep guide from the caller's library. Filters match
// the list endpoint so a guide can be scoped to one question type.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filters := db.ResponseFilters{
		QuestionType:     r.URL.Query().Get("question_type"),
		QuestionCategory: r.URL.Query().Get("question_category"),
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

	s.jsonResponse(w, http.StatusOK, export.BuildPrepGuide(responses, time.Now().UTC()))
}

// handleSearchByTags returns responses carrying at least one of the given
// tag values (CSV in the tags parameter).
func (s *Server) handleSearchByTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var tagValues []string
	for _, t := range strings.Split(r.URL.Query().Get("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tagValues = append(tagValues, t)
		}
	}
	if len(tagValues) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "tags parameter is required")
		return
	}

	responses, err := s.library.SearchByTags(r.Context(), userID, tagValues)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"responses": responses,
		"count":     len(responses),
	})
}
