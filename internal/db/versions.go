package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code raised when the
// (response_id, version_number) unique index rejects a duplicate.
const uniqueViolation = "23505"

// InsertNextVersion appends a new version to a response's chain and repoints
// the current pointer, all in one transaction. The response row is locked
// FOR UPDATE for the read-increment-write sequence, so two concurrent
// updates to the same response serialize rather than racing on the max
// version number. A unique-violation (possible only if callers bypass the
// lock) is retried once before giving up.
func (db *DB) InsertNextVersion(ctx context.Context, responseID uuid.UUID, responseText string, aiFeedback []byte) (*Version, error) {
	version, err := db.insertNextVersionOnce(ctx, responseID, responseText, aiFeedback)
	if err != nil && isUniqueViolation(err) {
		version, err = db.insertNextVersionOnce(ctx, responseID, responseText, aiFeedback)
	}
	return version, err
}

func (db *DB) insertNextVersionOnce(ctx context.Context, responseID uuid.UUID, responseText string, aiFeedback []byte) (*Version, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	// Lock the response row so the max() read below is stable until commit
	var locked uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM responses WHERE id = $1 FOR UPDATE`,
		responseID,
	).Scan(&locked)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("response not found: %s", responseID)
		}
		return nil, fmt.Errorf("failed to lock response: %w", err)
	}

	var version Version
	err = tx.QueryRow(ctx,
		`INSERT INTO response_versions (response_id, version_number, response_text, ai_feedback)
		 SELECT $1, COALESCE(MAX(version_number), 0) + 1, $2, $3
		 FROM response_versions WHERE response_id = $1
		 RETURNING id, response_id, version_number, response_text, ai_feedback, created_at`,
		responseID, responseText, aiFeedback,
	).Scan(&version.ID, &version.ResponseID, &version.VersionNumber,
		&version.ResponseText, &version.AIFeedback, &version.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert version: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE responses SET current_version_id = $1, current_response = $2, updated_at = NOW()
		 WHERE id = $3`,
		version.ID, responseText, responseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to repoint current version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit version: %w", err)
	}

	return &version, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// GetVersion retrieves a version scoped to its owning response. Returns nil
// when the version does not exist or belongs to a different response.
func (db *DB) GetVersion(ctx context.Context, versionID, responseID uuid.UUID) (*Version, error) {
	var v Version
	err := db.pool.QueryRow(ctx,
		`SELECT id, response_id, version_number, response_text, ai_feedback, created_at
		 FROM response_versions WHERE id = $1 AND response_id = $2`,
		versionID, responseID,
	).Scan(&v.ID, &v.ResponseID, &v.VersionNumber, &v.ResponseText, &v.AIFeedback, &v.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	return &v, nil
}

// ListVersions retrieves all versions for a response ordered by
// version_number descending (newest first).
func (db *DB) ListVersions(ctx context.Context, responseID uuid.UUID) ([]Version, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, response_id, version_number, response_text, ai_feedback, created_at
		 FROM response_versions WHERE response_id = $1
		 ORDER BY version_number DESC`,
		responseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var versions []Version
	for rows.Next() {
		var v Version
		if err := rows.Scan(&v.ID, &v.ResponseID, &v.VersionNumber, &v.ResponseText, &v.AIFeedback, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// RestoreVersion moves a response's current pointer to an existing version.
// No new version row is created; calling it again with the same version is
// idempotent apart from updated_at.
func (db *DB) RestoreVersion(ctx context.Context, responseID uuid.UUID, version *Version) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE responses SET current_version_id = $1, current_response = $2, updated_at = NOW()
		 WHERE id = $3`,
		version.ID, version.ResponseText, responseID,
	)
	if err != nil {
		return fmt.Errorf("failed to restore version: %w", err)
	}
	return nil
}
