package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const responseColumns = `id, user_id, question_text, question_type, question_category,
	current_response, current_version_id, is_favorite, practice_count,
	success_count, total_uses, success_rate, created_at, updated_at`

func scanResponse(row pgx.Row) (*Response, error) {
	var r Response
	err := row.Scan(&r.ID, &r.UserID, &r.QuestionText, &r.QuestionType, &r.QuestionCategory,
		&r.CurrentResponse, &r.CurrentVersionID, &r.IsFavorite, &r.PracticeCount,
		&r.SuccessCount, &r.TotalUses, &r.SuccessRate, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResponse creates a response together with its first version in a
// single transaction. The version is numbered 1 and the response's current
// pointer is set to it before commit.
func (db *DB) CreateResponse(ctx context.Context, input *ResponseCreateInput) (*Response, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	var responseID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO responses (user_id, question_text, question_type, question_category, current_response)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		input.UserID, input.QuestionText, input.QuestionType, input.QuestionCategory, input.ResponseText,
	).Scan(&responseID)
	if err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	var versionID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO response_versions (response_id, version_number, response_text, ai_feedback)
		 VALUES ($1, 1, $2, $3)
		 RETURNING id`,
		responseID, input.ResponseText, input.AIFeedback,
	).Scan(&versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial version: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE responses SET current_version_id = $1 WHERE id = $2`,
		versionID, responseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set current version: %w", err)
	}

	for _, tag := range input.Tags {
		_, err = tx.Exec(ctx,
			`INSERT INTO response_tags (response_id, tag_type, tag_value) VALUES ($1, $2, $3)`,
			responseID, tag.TagType, tag.TagValue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create tag: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit response: %w", err)
	}

	return db.GetResponse(ctx, responseID, input.UserID)
}

// GetResponse retrieves a response by ID, scoped to the owning user.
// Returns nil when the response does not exist or belongs to someone else.
func (db *DB) GetResponse(ctx context.Context, id, userID uuid.UUID) (*Response, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+responseColumns+` FROM responses WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	resp, err := scanResponse(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}

	tags, err := db.ListTags(ctx, resp.ID)
	if err != nil {
		return nil, err
	}
	resp.Tags = tags
	return resp, nil
}

// ListResponses retrieves all responses for a user matching the filters.
// Tag filtering is membership: the response must carry at least one tag
// whose value is in the requested set.
func (db *DB) ListResponses(ctx context.Context, userID uuid.UUID, filters ResponseFilters) ([]Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if filters.QuestionType != "" {
		query += fmt.Sprintf(" AND question_type = $%d", argNum)
		args = append(args, filters.QuestionType)
		argNum++
	}
	if filters.QuestionCategory != "" {
		query += fmt.Sprintf(" AND question_category = $%d", argNum)
		args = append(args, filters.QuestionCategory)
		argNum++
	}
	if filters.IsFavorite != nil {
		query += fmt.Sprintf(" AND is_favorite = $%d", argNum)
		args = append(args, *filters.IsFavorite)
		argNum++
	}
	if len(filters.Tags) > 0 {
		query += fmt.Sprintf(" AND id IN (SELECT response_id FROM response_tags WHERE tag_value = ANY($%d))", argNum)
		args = append(args, filters.Tags)
		argNum++
	}

	query += " ORDER BY updated_at DESC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
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

// UpdateResponseFields applies partial field updates to a response. It does
// not touch the version chain; text changes go through InsertNextVersion.
func (db *DB) UpdateResponseFields(ctx context.Context, id, userID uuid.UUID, input *ResponseUpdateInput) (*Response, error) {
	query := `UPDATE responses SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	appendSet := func(col string, val any) {
		query += fmt.Sprintf(", %s = $%d", col, argNum)
		args = append(args, val)
		argNum++
	}

	if input.QuestionText != nil {
		appendSet("question_text", *input.QuestionText)
	}
	if input.QuestionType != nil {
		appendSet("question_type", *input.QuestionType)
	}
	if input.QuestionCategory != nil {
		appendSet("question_category", *input.QuestionCategory)
	}
	if input.IsFavorite != nil {
		appendSet("is_favorite", *input.IsFavorite)
	}
	if input.SuccessCount != nil {
		appendSet("success_count", *input.SuccessCount)
	}
	if input.TotalUses != nil {
		appendSet("total_uses", *input.TotalUses)
	}
	if input.SuccessRate != nil {
		appendSet("success_rate", *input.SuccessRate)
	}

	query += fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", argNum, argNum+1)
	args = append(args, id, userID)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update response: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, nil
	}

	return db.GetResponse(ctx, id, userID)
}

// DeleteResponse deletes a response; versions, tags, outcomes and practice
// sessions go with it via ON DELETE CASCADE. Returns false when nothing
// matched the id/user pair.
func (db *DB) DeleteResponse(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM responses WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete response: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func collectResponses(rows pgx.Rows) ([]Response, error) {
	var responses []Response
	for rows.Next() {
		var r Response
		err := rows.Scan(&r.ID, &r.UserID, &r.QuestionText, &r.QuestionType, &r.QuestionCategory,
			&r.CurrentResponse, &r.CurrentVersionID, &r.IsFavorite, &r.PracticeCount,
			&r.SuccessCount, &r.TotalUses, &r.SuccessRate, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, r)
	}
	return responses, nil
}

// attachTags loads tags for a batch of responses in one query
func (db *DB) attachTags(ctx context.Context, responses []Response) error {
	if len(responses) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(responses))
	index := make(map[uuid.UUID]int, len(responses))
	for i := range responses {
		ids[i] = responses[i].ID
		index[responses[i].ID] = i
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, response_id, tag_type, tag_value FROM response_tags WHERE response_id = ANY($1)`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.ResponseID, &t.TagType, &t.TagValue); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		if i, ok := index[t.ResponseID]; ok {
			responses[i].Tags = append(responses[i].Tags, t)
		}
	}
	return nil
}
