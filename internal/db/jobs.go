package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateJob saves a job posting for later relevance matching
func (db *DB) CreateJob(ctx context.Context, userID uuid.UUID, company, position, description string, sourceURL *string) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (user_id, company, position, description, source_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, company, position, description, source_url, created_at`,
		userID, company, position, description, sourceURL,
	).Scan(&j.ID, &j.UserID, &j.Company, &j.Position, &j.Description, &j.SourceURL, &j.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// GetJob retrieves a job by ID, scoped to the owning user. Returns nil when
// absent or owned by someone else.
func (db *DB) GetJob(ctx context.Context, id, userID uuid.UUID) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, company, position, description, source_url, created_at
		 FROM jobs WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&j.ID, &j.UserID, &j.Company, &j.Position, &j.Description, &j.SourceURL, &j.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// ListJobs retrieves all jobs for a user, newest first
func (db *DB) ListJobs(ctx context.Context, userID uuid.UUID) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, company, position, description, source_url, created_at
		 FROM jobs WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.UserID, &j.Company, &j.Position, &j.Description, &j.SourceURL, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
