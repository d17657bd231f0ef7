package types

import "github.com/google/uuid"

// CreateJobPostingRequest creates a job posting from inline text.
type CreateJobPostingRequest struct {
	Title        string `json:"title" validate:"required,min=1"`
	Description  string `json:"description" validate:"required,min=1"`
	Requirements string `json:"requirements,omitempty"`
}

// IngestJobPostingRequest creates a job posting by fetching a URL.
type IngestJobPostingRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// CreateSessionRequest starts a new screening session for a job posting.
type CreateSessionRequest struct {
	JobPostingID        uuid.UUID `json:"job_posting_id" validate:"required"`
	Name                string    `json:"name" validate:"required,min=1"`
	SimilarityThreshold *float64  `json:"similarity_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}
