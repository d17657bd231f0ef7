package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionCreateInput holds the fields needed to open a screening session
type SessionCreateInput struct {
	JobPostingID        uuid.UUID
	Name                string
	SimilarityThreshold float64
	CreatedBy           *uuid.UUID
}

// CreateSession opens a new screening session in the pending state
func (db *DB) CreateSession(ctx context.Context, input *SessionCreateInput) (*ScreeningSession, error) {
	var s ScreeningSession
	err := db.pool.QueryRow(ctx,
		`INSERT INTO screening_sessions (job_posting_id, name, similarity_threshold, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, job_posting_id, name, status, similarity_threshold, created_by, created_at, completed_at`,
		input.JobPostingID, input.Name, input.SimilarityThreshold, input.CreatedBy,
	).Scan(&s.ID, &s.JobPostingID, &s.Name, &s.Status, &s.SimilarityThreshold,
		&s.CreatedBy, &s.CreatedAt, &s.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create screening session: %w", err)
	}
	return &s, nil
}

// GetSession retrieves a screening session by ID
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*ScreeningSession, error) {
	var s ScreeningSession
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_posting_id, name, status, similarity_threshold, created_by, created_at, completed_at
		 FROM screening_sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.JobPostingID, &s.Name, &s.Status, &s.SimilarityThreshold,
		&s.CreatedBy, &s.CreatedAt, &s.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get screening session: %w", err)
	}
	return &s, nil
}

// ListSessions retrieves recent screening sessions
func (db *DB) ListSessions(ctx context.Context, limit int) ([]ScreeningSession, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_posting_id, name, status, similarity_threshold, created_by, created_at, completed_at
		 FROM screening_sessions ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list screening sessions: %w", err)
	}
	defer rows.Close()

	var sessions []ScreeningSession
	for rows.Next() {
		var s ScreeningSession
		if err := rows.Scan(&s.ID, &s.JobPostingID, &s.Name, &s.Status, &s.SimilarityThreshold,
			&s.CreatedBy, &s.CreatedAt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan screening session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// UpdateSessionStatus moves a session to a new lifecycle state. Terminal
// states also record the completion time.
func (db *DB) UpdateSessionStatus(ctx context.Context, id uuid.UUID, status string) error {
	var err error
	if status == SessionStatusCompleted || status == SessionStatusFailed {
		_, err = db.pool.Exec(ctx,
			`UPDATE screening_sessions SET status = $1, completed_at = NOW() WHERE id = $2`,
			status, id,
		)
	} else {
		_, err = db.pool.Exec(ctx,
			`UPDATE screening_sessions SET status = $1 WHERE id = $2`,
			status, id,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	return nil
}
