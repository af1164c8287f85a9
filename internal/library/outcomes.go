package library

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
)

// OutcomeInput carries the fields for recording an interview outcome
type OutcomeInput struct {
	JobID               *uuid.UUID `json:"job_id,omitempty"`
	InterviewDate       *time.Time `json:"interview_date,omitempty"`
	Company             *string    `json:"company,omitempty"`
	Position            *string    `json:"position,omitempty"`
	Outcome             string     `json:"outcome" validate:"required,oneof=offer next_round rejected pending"`
	InterviewerReaction *string    `json:"interviewer_reaction,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
}

// RecordOutcome appends an outcome to a response. success_rate and
// success_count are not touched here; they are externally-set fields.
func (s *Service) RecordOutcome(ctx context.Context, userID, responseID uuid.UUID, input OutcomeInput) (*db.Outcome, error) {
	resp, err := s.store.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NotFoundError{Resource: "response", ID: responseID.String()}
	}

	if !db.ValidOutcomeResult(input.Outcome) {
		return nil, &ValidationError{Field: "outcome", Message: "must be offer, next_round, rejected or pending"}
	}
	if input.InterviewerReaction != nil && !db.ValidInterviewerReaction(*input.InterviewerReaction) {
		return nil, &ValidationError{Field: "interviewer_reaction", Message: "must be positive, neutral or negative"}
	}

	return s.store.CreateOutcome(ctx, &db.OutcomeCreateInput{
		ResponseID:          responseID,
		JobID:               input.JobID,
		InterviewDate:       input.InterviewDate,
		Company:             input.Company,
		Position:            input.Position,
		Outcome:             input.Outcome,
		InterviewerReaction: input.InterviewerReaction,
		Notes:               input.Notes,
	})
}

// Metrics is a read-only summary of how a response has performed
type Metrics struct {
	ResponseID    uuid.UUID      `json:"response_id"`
	PracticeCount int            `json:"practice_count"`
	SuccessCount  int            `json:"success_count"`
	TotalUses     int            `json:"total_uses"`
	SuccessRate   *float64       `json:"success_rate,omitempty"`
	VersionCount  int            `json:"version_count"`
	OutcomeTally  map[string]int `json:"outcome_tally"`
	Outcomes      []db.Outcome   `json:"outcomes"`
}

// GetMetrics assembles the usage metrics for one response. Versions and
// outcomes load concurrently; both queries are plain reads.
func (s *Service) GetMetrics(ctx context.Context, userID, responseID uuid.UUID) (*Metrics, error) {
	resp, err := s.store.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NotFoundError{Resource: "response", ID: responseID.String()}
	}

	var (
		versions []db.Version
		outcomes []db.Outcome
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		versions, err = s.store.ListVersions(gctx, responseID)
		return err
	})
	g.Go(func() error {
		var err error
		outcomes, err = s.store.ListOutcomes(gctx, responseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tally := make(map[string]int)
	for _, o := range outcomes {
		tally[o.Outcome]++
	}

	return &Metrics{
		ResponseID:    responseID,
		PracticeCount: resp.PracticeCount,
		SuccessCount:  resp.SuccessCount,
		TotalUses:     resp.TotalUses,
		SuccessRate:   resp.SuccessRate,
		VersionCount:  len(versions),
		OutcomeTally:  tally,
		Outcomes:      outcomes,
	}, nil
}
