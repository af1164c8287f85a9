// Package library implements the response library engine: the version
// chain, tag management and outcome recording over a persistence store,
// with best-effort feedback analysis on every text revision.
package library

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/feedback"
)

// Service coordinates response and version mutations
type Service struct {
	store    Store
	analyzer Analyzer
}

// NewService creates a library service over a store and feedback analyzer
func NewService(store Store, analyzer Analyzer) *Service {
	return &Service{store: store, analyzer: analyzer}
}

// CreateInput carries the fields for creating a response
type CreateInput struct {
	QuestionText     string        `json:"question_text" validate:"required"`
	QuestionType     string        `json:"question_type" validate:"required,oneof=behavioral technical situational"`
	QuestionCategory *string       `json:"question_category,omitempty"`
	ResponseText     string        `json:"response_text" validate:"required"`
	Tags             []db.TagInput `json:"tags,omitempty"`
}

// UpdateInput carries partial updates. A present ResponseText that differs
// from the stored text appends a new version; everything else is a plain
// field update.
type UpdateInput struct {
	QuestionText     *string  `json:"question_text,omitempty"`
	QuestionType     *string  `json:"question_type,omitempty" validate:"omitempty,oneof=behavioral technical situational"`
	QuestionCategory *string  `json:"question_category,omitempty"`
	ResponseText     *string  `json:"response_text,omitempty"`
	IsFavorite       *bool    `json:"is_favorite,omitempty"`
	SuccessCount     *int     `json:"success_count,omitempty"`
	TotalUses        *int     `json:"total_uses,omitempty"`
	SuccessRate      *float64 `json:"success_rate,omitempty"`
}

// Create creates a response with its first version. Feedback analysis is
// best-effort: when the generator degrades to its fallback, the version is
// stored with null feedback and creation still succeeds.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*db.Response, *feedback.AnswerFeedback, error) {
	if strings.TrimSpace(input.QuestionText) == "" {
		return nil, nil, &ValidationError{Field: "question_text", Message: "must not be empty"}
	}
	if strings.TrimSpace(input.ResponseText) == "" {
		return nil, nil, &ValidationError{Field: "response_text", Message: "must not be empty"}
	}
	if !db.ValidQuestionType(input.QuestionType) {
		return nil, nil, &ValidationError{Field: "question_type", Message: "must be behavioral, technical or situational"}
	}

	fb, remote := s.analyzer.Analyze(ctx, input.ResponseText, input.QuestionType)
	stored := marshalFeedback(fb, remote)

	resp, err := s.store.CreateResponse(ctx, &db.ResponseCreateInput{
		UserID:           userID,
		QuestionText:     input.QuestionText,
		QuestionType:     input.QuestionType,
		QuestionCategory: input.QuestionCategory,
		ResponseText:     input.ResponseText,
		AIFeedback:       stored,
		Tags:             input.Tags,
	})
	if err != nil {
		return nil, nil, err
	}
	return resp, fb, nil
}

// Get retrieves a response scoped to the caller
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*db.Response, error) {
	resp, err := s.store.GetResponse(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NotFoundError{Resource: "response", ID: id.String()}
	}
	return resp, nil
}

// List retrieves the caller's responses matching the filters
func (s *Service) List(ctx context.Context, userID uuid.UUID, filters db.ResponseFilters) ([]db.Response, error) {
	return s.store.ListResponses(ctx, userID, filters)
}

// SearchByTags retrieves the caller's responses carrying any of the given
// tag values.
func (s *Service) SearchByTags(ctx context.Context, userID uuid.UUID, tagValues []string) ([]db.Response, error) {
	return s.store.SearchResponsesByTags(ctx, userID, tagValues)
}

// Update applies a patch to a response. A changed response_text appends a
// new version numbered max+1 and repoints the current pointer; identical or
// absent text leaves the version chain untouched.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (*db.Response, error) {
	existing, err := s.store.GetResponse(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &NotFoundError{Resource: "response", ID: id.String()}
	}

	if input.QuestionType != nil && !db.ValidQuestionType(*input.QuestionType) {
		return nil, &ValidationError{Field: "question_type", Message: "must be behavioral, technical or situational"}
	}

	if input.ResponseText != nil {
		if strings.TrimSpace(*input.ResponseText) == "" {
			return nil, &ValidationError{Field: "response_text", Message: "must not be empty"}
		}
		if *input.ResponseText != existing.CurrentResponse {
			questionType := existing.QuestionType
			if input.QuestionType != nil {
				questionType = *input.QuestionType
			}
			fb, remote := s.analyzer.Analyze(ctx, *input.ResponseText, questionType)
			if _, err := s.store.InsertNextVersion(ctx, id, *input.ResponseText, marshalFeedback(fb, remote)); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.store.UpdateResponseFields(ctx, id, userID, &db.ResponseUpdateInput{
		QuestionText:     input.QuestionText,
		QuestionType:     input.QuestionType,
		QuestionCategory: input.QuestionCategory,
		IsFavorite:       input.IsFavorite,
		SuccessCount:     input.SuccessCount,
		TotalUses:        input.TotalUses,
		SuccessRate:      input.SuccessRate,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &NotFoundError{Resource: "response", ID: id.String()}
	}
	return updated, nil
}

// RestoreVersion moves the response's current pointer to an earlier
// version. No new version is created; repeated restores of the same
// version are idempotent.
func (s *Service) RestoreVersion(ctx context.Context, userID, responseID, versionID uuid.UUID) (*db.Response, error) {
	resp, err := s.store.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NotFoundError{Resource: "response", ID: responseID.String()}
	}

	version, err := s.store.GetVersion(ctx, versionID, responseID)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, &NotFoundError{Resource: "version", ID: versionID.String()}
	}

	if err := s.store.RestoreVersion(ctx, responseID, version); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, responseID)
}

// VersionHistory returns all versions for a response, newest first
func (s *Service) VersionHistory(ctx context.Context, userID, responseID uuid.UUID) ([]db.Version, error) {
	resp, err := s.store.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NotFoundError{Resource: "response", ID: responseID.String()}
	}
	return s.store.ListVersions(ctx, responseID)
}

// Delete removes a response together with its versions, tags, outcomes and
// practice sessions.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.store.DeleteResponse(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return &NotFoundError{Resource: "response", ID: id.String()}
	}
	return nil
}

// marshalFeedback encodes remote feedback for version storage. Fallback
// payloads are not persisted; the version carries null feedback instead.
func marshalFeedback(fb *feedback.AnswerFeedback, remote bool) []byte {
	if !remote || fb == nil {
		return nil
	}
	data, err := json.Marshal(fb)
	if err != nil {
		log.Printf("[library] failed to marshal feedback: %v", err)
		return nil
	}
	return data
}
