package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobPostingCreateInput holds the fields needed to create a job posting
type JobPostingCreateInput struct {
	Title        string
	Description  string
	Requirements string
	SourceURL    string
	CreatedBy    *uuid.UUID
}

// CreateJobPosting creates a new job posting and returns the stored record
func (db *DB) CreateJobPosting(ctx context.Context, input *JobPostingCreateInput) (*JobPosting, error) {
	var p JobPosting
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (title, description, requirements, source_url, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, description, requirements, source_url, created_by, created_at`,
		input.Title, input.Description, input.Requirements, input.SourceURL, input.CreatedBy,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Requirements, &p.SourceURL, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return &p, nil
}

// GetJobPosting retrieves a job posting by ID
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	var p JobPosting
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, requirements, source_url, created_by, created_at
		 FROM job_postings WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Requirements, &p.SourceURL, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return &p, nil
}

// ListJobPostings retrieves recent job postings
func (db *DB) ListJobPostings(ctx context.Context, limit int) ([]JobPosting, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, requirements, source_url, created_by, created_at
		 FROM job_postings ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		var p JobPosting
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Requirements,
			&p.SourceURL, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, nil
}

// DeleteJobPosting deletes a posting and its sessions (via cascade)
func (db *DB) DeleteJobPosting(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job posting not found: %s", id)
	}
	return nil
}
