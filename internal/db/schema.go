package db

import (
	"context"
	"fmt"
)

// schema holds the DDL for all response library tables. The unique index on
// (response_id, version_number) backs the insert-next-version retry path.
const schema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS jobs (
    id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    company     TEXT NOT NULL,
    position    TEXT NOT NULL,
    description TEXT NOT NULL,
    source_url  TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS responses (
    id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id            UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    question_text      TEXT NOT NULL,
    question_type      TEXT NOT NULL CHECK (question_type IN ('behavioral', 'technical', 'situational')),
    question_category  TEXT,
    current_response   TEXT NOT NULL,
    current_version_id UUID,
    is_favorite        BOOLEAN NOT NULL DEFAULT FALSE,
    practice_count     INTEGER NOT NULL DEFAULT 0,
    success_count      INTEGER NOT NULL DEFAULT 0,
    total_uses         INTEGER NOT NULL DEFAULT 0,
    success_rate       DOUBLE PRECISION,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS response_versions (
    id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    response_id    UUID NOT NULL REFERENCES responses(id) ON DELETE CASCADE,
    version_number INTEGER NOT NULL CHECK (version_number >= 1),
    response_text  TEXT NOT NULL,
    ai_feedback    JSONB,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS response_versions_response_id_version_number_key
    ON response_versions (response_id, version_number);

CREATE TABLE IF NOT EXISTS response_tags (
    id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    response_id UUID NOT NULL REFERENCES responses(id) ON DELETE CASCADE,
    tag_type    TEXT NOT NULL,
    tag_value   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS response_tags_response_id_idx ON response_tags (response_id);

CREATE TABLE IF NOT EXISTS response_outcomes (
    id                   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    response_id          UUID NOT NULL REFERENCES responses(id) ON DELETE CASCADE,
    job_id               UUID REFERENCES jobs(id) ON DELETE SET NULL,
    interview_date       TIMESTAMPTZ,
    company              TEXT,
    position             TEXT,
    outcome              TEXT NOT NULL CHECK (outcome IN ('offer', 'next_round', 'rejected', 'pending')),
    interviewer_reaction TEXT CHECK (interviewer_reaction IN ('positive', 'neutral', 'negative')),
    notes                TEXT,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS practice_sessions (
    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id       UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    response_id   UUID NOT NULL REFERENCES responses(id) ON DELETE CASCADE,
    practice_text TEXT NOT NULL,
    delivery_time INTEGER,
    ai_score      DOUBLE PRECISION NOT NULL,
    ai_feedback   JSONB,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate applies the schema. Statements are idempotent so this is safe to
// run on every startup of the migrate command.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
