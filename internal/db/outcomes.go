package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateOutcome records an interview outcome for a response. Outcomes are
// append-only; there is no update or delete path.
func (db *DB) CreateOutcome(ctx context.Context, input *OutcomeCreateInput) (*Outcome, error) {
	var o Outcome
	err := db.pool.QueryRow(ctx,
		`INSERT INTO response_outcomes (response_id, job_id, interview_date, company, position, outcome, interviewer_reaction, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, response_id, job_id, interview_date, company, position, outcome, interviewer_reaction, notes, created_at`,
		input.ResponseID, input.JobID, input.InterviewDate, input.Company,
		input.Position, input.Outcome, input.InterviewerReaction, input.Notes,
	).Scan(&o.ID, &o.ResponseID, &o.JobID, &o.InterviewDate, &o.Company,
		&o.Position, &o.Outcome, &o.InterviewerReaction, &o.Notes, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create outcome: %w", err)
	}
	return &o, nil
}

// ListOutcomes retrieves all outcomes for a response, newest first
func (db *DB) ListOutcomes(ctx context.Context, responseID uuid.UUID) ([]Outcome, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, response_id, job_id, interview_date, company, position, outcome, interviewer_reaction, notes, created_at
		 FROM response_outcomes WHERE response_id = $1
		 ORDER BY created_at DESC`,
		responseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var o Outcome
		err := rows.Scan(&o.ID, &o.ResponseID, &o.JobID, &o.InterviewDate, &o.Company,
			&o.Position, &o.Outcome, &o.InterviewerReaction, &o.Notes, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}
