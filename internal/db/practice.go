package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreatePracticeSession persists a practice session and increments the
// owning response's practice_count in the same transaction. The counter
// bump is a single atomic UPDATE so concurrent sessions never lose counts.
func (db *DB) CreatePracticeSession(ctx context.Context, input *PracticeSessionCreateInput) (*PracticeSession, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	var s PracticeSession
	err = tx.QueryRow(ctx,
		`INSERT INTO practice_sessions (user_id, response_id, practice_text, delivery_time, ai_score, ai_feedback)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, response_id, practice_text, delivery_time, ai_score, ai_feedback, created_at`,
		input.UserID, input.ResponseID, input.PracticeText, input.DeliveryTime, input.AIScore, input.AIFeedback,
	).Scan(&s.ID, &s.UserID, &s.ResponseID, &s.PracticeText, &s.DeliveryTime, &s.AIScore, &s.AIFeedback, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create practice session: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE responses SET practice_count = practice_count + 1, updated_at = NOW() WHERE id = $1`,
		input.ResponseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to increment practice count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit practice session: %w", err)
	}

	return &s, nil
}

// ListPracticeSessions retrieves all practice sessions for a response,
// newest first.
func (db *DB) ListPracticeSessions(ctx context.Context, responseID uuid.UUID) ([]PracticeSession, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, response_id, practice_text, delivery_time, ai_score, ai_feedback, created_at
		 FROM practice_sessions WHERE response_id = $1
		 ORDER BY created_at DESC`,
		responseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list practice sessions: %w", err)
	}
	defer rows.Close()

	var sessions []PracticeSession
	for rows.Next() {
		var s PracticeSession
		err := rows.Scan(&s.ID, &s.UserID, &s.ResponseID, &s.PracticeText, &s.DeliveryTime, &s.AIScore, &s.AIFeedback, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan practice session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
