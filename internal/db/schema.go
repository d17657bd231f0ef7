package db

import (
	"context"
	"fmt"
)

// schemaStatements creates the screening tables. Statements are idempotent
// so the migrate command can run repeatedly.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		password_set BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_postings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		requirements TEXT NOT NULL DEFAULT '',
		source_url TEXT NOT NULL DEFAULT '',
		created_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS screening_sessions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_posting_id UUID NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
		name TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		similarity_threshold DOUBLE PRECISION NOT NULL DEFAULT 0.5,
		created_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL REFERENCES screening_sessions(id) ON DELETE CASCADE,
		filename TEXT NOT NULL,
		content_text TEXT NOT NULL,
		skills JSONB NOT NULL DEFAULT '[]',
		education JSONB NOT NULL DEFAULT '[]',
		experience JSONB NOT NULL DEFAULT '[]',
		contact JSONB NOT NULL DEFAULT '{}',
		years_experience INTEGER,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_resumes_session ON resumes(session_id)`,
	`CREATE TABLE IF NOT EXISTS resume_analyses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL REFERENCES screening_sessions(id) ON DELETE CASCADE,
		resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
		filename TEXT NOT NULL,
		overall_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		skills_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		experience_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		education_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		final_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		matched_skills JSONB NOT NULL DEFAULT '[]',
		missing_skills JSONB NOT NULL DEFAULT '[]',
		status TEXT NOT NULL DEFAULT 'scored',
		error_message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analyses_session ON resume_analyses(session_id)`,
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
