// Package screening runs a session's resumes through the matcher and
// persists the resulting score records.
package screening

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/matching"
	"github.com/jonathan/smarthire/internal/observability"
)

// DefaultConcurrency bounds how many resumes are matched at once.
const DefaultConcurrency = 4

// Store is the persistence surface the runner needs.
type Store interface {
	GetSession(ctx context.Context, id uuid.UUID) (*db.ScreeningSession, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (*db.JobPosting, error)
	ListResumesBySession(ctx context.Context, sessionID uuid.UUID) ([]db.Resume, error)
	ReplaceSessionAnalyses(ctx context.Context, sessionID uuid.UUID, inputs []db.AnalysisCreateInput) error
	UpdateSessionStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Matcher scores one resume against a job description.
type Matcher interface {
	Match(ctx context.Context, jobText, resumeText string) (*matching.Result, error)
}

// Runner executes screening runs.
type Runner struct {
	store       Store
	matcher     Matcher
	logger      *zap.Logger
	concurrency int
}

// NewRunner creates a Runner. Concurrency below 1 uses DefaultConcurrency.
func NewRunner(store Store, matcher Matcher, logger *zap.Logger, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Runner{
		store:       store,
		matcher:     matcher,
		logger:      logger,
		concurrency: concurrency,
	}
}

// RunSummary reports the outcome of a screening run.
type RunSummary struct {
	SessionID uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
	Total     int       `json:"total"`
	Scored    int       `json:"scored"`
	Failed    int       `json:"failed"`
}

// Run scores every resume in the session against its job posting and replaces
// the session's analyses with the new results. A resume that cannot be scored
// is recorded as failed and excluded from the ranking; the run only fails as
// a whole when no resume could be scored or persistence breaks.
func (r *Runner) Run(ctx context.Context, sessionID uuid.UUID) (*RunSummary, error) {
	started := time.Now()

	session, err := r.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	posting, err := r.store.GetJobPosting(ctx, session.JobPostingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job posting: %w", err)
	}
	if posting == nil {
		return nil, fmt.Errorf("job posting %s not found", session.JobPostingID)
	}

	resumes, err := r.store.ListResumesBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	if len(resumes) == 0 {
		return nil, fmt.Errorf("session %s has no resumes to screen", sessionID)
	}

	if err := r.store.UpdateSessionStatus(ctx, sessionID, db.SessionStatusScreening); err != nil {
		return nil, fmt.Errorf("failed to mark session screening: %w", err)
	}

	jobText := posting.Description
	if posting.Requirements != "" {
		jobText += "\n" + posting.Requirements
	}

	inputs := make([]db.AnalysisCreateInput, len(resumes))
	var mu sync.Mutex
	scored := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, resume := range resumes {
		g.Go(func() error {
			input := r.scoreResume(gctx, jobText, resume)
			mu.Lock()
			inputs[i] = input
			if input.Status == db.AnalysisStatusScored {
				scored++
			}
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; the group exists for the limit and for
	// context propagation.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status := db.SessionStatusCompleted
	if scored == 0 {
		status = db.SessionStatusFailed
	}

	if err := r.store.ReplaceSessionAnalyses(ctx, sessionID, inputs); err != nil {
		_ = r.store.UpdateSessionStatus(ctx, sessionID, db.SessionStatusFailed)
		return nil, fmt.Errorf("failed to persist analyses: %w", err)
	}
	if err := r.store.UpdateSessionStatus(ctx, sessionID, status); err != nil {
		return nil, fmt.Errorf("failed to finish session: %w", err)
	}

	observability.ScreeningRuns.WithLabelValues(status).Inc()
	observability.ScreeningDuration.Observe(time.Since(started).Seconds())

	summary := &RunSummary{
		SessionID: sessionID,
		Status:    status,
		Total:     len(resumes),
		Scored:    scored,
		Failed:    len(resumes) - scored,
	}
	r.logger.Info("screening run finished",
		zap.String("session_id", sessionID.String()),
		zap.String("status", status),
		zap.Int("total", summary.Total),
		zap.Int("scored", summary.Scored),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

func (r *Runner) scoreResume(ctx context.Context, jobText string, resume db.Resume) db.AnalysisCreateInput {
	input := db.AnalysisCreateInput{
		ResumeID: resume.ID,
		Filename: resume.Filename,
	}

	result, err := r.matcher.Match(ctx, jobText, resume.ContentText)
	if err != nil {
		r.logger.Warn("resume scoring failed",
			zap.String("resume_id", resume.ID.String()),
			zap.String("filename", resume.Filename),
			zap.Error(err),
		)
		observability.ResumesScreened.WithLabelValues(db.AnalysisStatusFailed).Inc()
		input.Status = db.AnalysisStatusFailed
		input.ErrorMessage = err.Error()
		return input
	}

	observability.ResumesScreened.WithLabelValues(db.AnalysisStatusScored).Inc()
	input.Status = db.AnalysisStatusScored
	input.OverallScore = result.Breakdown.Overall
	input.SkillsScore = result.Breakdown.Skills
	input.ExperienceScore = result.Breakdown.Experience
	input.EducationScore = result.Breakdown.Education
	input.FinalScore = result.FinalScore
	input.MatchedSkills = result.MatchedSkills
	input.MissingSkills = result.MissingSkills
	return input
}
