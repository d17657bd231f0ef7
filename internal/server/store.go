package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/ingestion"
	"github.com/jonathan/smarthire/internal/screening"
)

// DBClient is the persistence surface the server depends on. *db.DB
// satisfies it; tests substitute fakes.
type DBClient interface {
	// Users
	CreateUser(ctx context.Context, name, email string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Job postings
	CreateJobPosting(ctx context.Context, input *db.JobPostingCreateInput) (*db.JobPosting, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (*db.JobPosting, error)
	ListJobPostings(ctx context.Context, limit int) ([]db.JobPosting, error)
	DeleteJobPosting(ctx context.Context, id uuid.UUID) error

	// Screening sessions
	CreateSession(ctx context.Context, input *db.SessionCreateInput) (*db.ScreeningSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*db.ScreeningSession, error)
	ListSessions(ctx context.Context, limit int) ([]db.ScreeningSession, error)

	// Resumes and results
	CreateResume(ctx context.Context, input *db.ResumeCreateInput) (*db.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumesBySession(ctx context.Context, sessionID uuid.UUID) ([]db.Resume, error)
	CountResumesBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
	ListAnalysesBySession(ctx context.Context, sessionID uuid.UUID) ([]db.ResumeAnalysis, error)

	GetStatistics(ctx context.Context) (*db.Statistics, error)
}

// ScreeningRunner runs a screening pass over a session.
type ScreeningRunner interface {
	Run(ctx context.Context, sessionID uuid.UUID) (*screening.RunSummary, error)
}

// PostingFetcher pulls a job posting from a URL.
type PostingFetcher interface {
	Fetch(ctx context.Context, url string) (*ingestion.Posting, error)
}
