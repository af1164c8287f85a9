package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ListTags retrieves all tags for a response
func (db *DB) ListTags(ctx context.Context, responseID uuid.UUID) ([]Tag, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, response_id, tag_type, tag_value FROM response_tags WHERE response_id = $1`,
		responseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.ResponseID, &t.TagType, &t.TagValue); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// AddTags appends tag rows to a response. No dedup is enforced; callers may
// attach the same (type, value) pair more than once.
func (db *DB) AddTags(ctx context.Context, responseID uuid.UUID, tags []TagInput) error {
	for _, tag := range tags {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO response_tags (response_id, tag_type, tag_value) VALUES ($1, $2, $3)`,
			responseID, tag.TagType, tag.TagValue,
		)
		if err != nil {
			return fmt.Errorf("failed to add tag: %w", err)
		}
	}
	return nil
}

// RemoveTags deletes tags by ID, scoped to the response so a caller cannot
// strip tags off someone else's response by guessing IDs.
func (db *DB) RemoveTags(ctx context.Context, responseID uuid.UUID, tagIDs []uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM response_tags WHERE response_id = $1 AND id = ANY($2)`,
		responseID, tagIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to remove tags: %w", err)
	}
	return nil
}

// SearchResponsesByTags retrieves a user's responses carrying at least one
// tag whose value is in the given set.
func (db *DB) SearchResponsesByTags(ctx context.Context, userID uuid.UUID, tagValues []string) ([]Response, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+responseColumns+` FROM responses
		 WHERE user_id = $1
		   AND id IN (SELECT response_id FROM response_tags WHERE tag_value = ANY($2))
		 ORDER BY updated_at DESC`,
		userID, tagValues,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search responses by tags: %w", err)
	}
	defer rows.Close()

	responses, err := collectResponses(rows)
	if err != nil {
		return nil, err
	}
	if err := db.attachTags(ctx, responses); err != nil {
		return nil, err
	}
	return responses, nil
}
