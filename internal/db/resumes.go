package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ResumeCreateInput holds the fields needed to store an uploaded resume
type ResumeCreateInput struct {
	SessionID       uuid.UUID
	Filename        string
	ContentText     string
	Skills          []string
	Education       []string
	Experience      []string
	Contact         Contact
	YearsExperience *int
}

// CreateResume stores an uploaded resume with its extracted structure
func (db *DB) CreateResume(ctx context.Context, input *ResumeCreateInput) (*Resume, error) {
	contactJSON, err := json.Marshal(input.Contact)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact: %w", err)
	}

	var r Resume
	var contactBytes []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (session_id, filename, content_text, skills, education, experience, contact, years_experience)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, session_id, filename, content_text, skills, education, experience, contact, years_experience, uploaded_at`,
		input.SessionID, input.Filename, input.ContentText,
		StringArray(input.Skills), StringArray(input.Education), StringArray(input.Experience),
		contactJSON, input.YearsExperience,
	).Scan(&r.ID, &r.SessionID, &r.Filename, &r.ContentText,
		&r.Skills, &r.Education, &r.Experience, &contactBytes, &r.YearsExperience, &r.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}

	if contactBytes != nil {
		_ = json.Unmarshal(contactBytes, &r.Contact)
	}

	return &r, nil
}

// GetResume retrieves a resume by ID
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	var contactBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, filename, content_text, skills, education, experience, contact, years_experience, uploaded_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.SessionID, &r.Filename, &r.ContentText,
		&r.Skills, &r.Education, &r.Experience, &contactBytes, &r.YearsExperience, &r.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if contactBytes != nil {
		_ = json.Unmarshal(contactBytes, &r.Contact)
	}

	return &r, nil
}

// ListResumesBySession retrieves all resumes uploaded to a session
func (db *DB) ListResumesBySession(ctx context.Context, sessionID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, filename, content_text, skills, education, experience, contact, years_experience, uploaded_at
		 FROM resumes WHERE session_id = $1 ORDER BY uploaded_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		var contactBytes []byte
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Filename, &r.ContentText,
			&r.Skills, &r.Education, &r.Experience, &contactBytes, &r.YearsExperience, &r.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		if contactBytes != nil {
			_ = json.Unmarshal(contactBytes, &r.Contact)
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

// CountResumesBySession returns the number of resumes uploaded to a session
func (db *DB) CountResumesBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM resumes WHERE session_id = $1`,
		sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return count, nil
}
