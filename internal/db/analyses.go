package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AnalysisCreateInput holds one candidate's score record for a screening run
type AnalysisCreateInput struct {
	ResumeID        uuid.UUID
	Filename        string
	OverallScore    float64
	SkillsScore     float64
	ExperienceScore float64
	EducationScore  float64
	FinalScore      float64
	MatchedSkills   []string
	MissingSkills   []string
	Status          string
	ErrorMessage    string
}

// ReplaceSessionAnalyses atomically replaces a session's analyses with the
// results of a new screening run. Rows from the previous run are dropped so
// the session always holds exactly one run's output.
func (db *DB) ReplaceSessionAnalyses(ctx context.Context, sessionID uuid.UUID, inputs []AnalysisCreateInput) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			fmt.Printf("Rollback error: %v\n", rErr)
		}
	}()

	if _, err := tx.Exec(ctx,
		`DELETE FROM resume_analyses WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear previous analyses: %w", err)
	}

	for _, input := range inputs {
		_, err := tx.Exec(ctx,
			`INSERT INTO resume_analyses
			     (session_id, resume_id, filename, overall_score, skills_score,
			      experience_score, education_score, final_score,
			      matched_skills, missing_skills, status, error_message)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			sessionID, input.ResumeID, input.Filename,
			input.OverallScore, input.SkillsScore, input.ExperienceScore, input.EducationScore,
			input.FinalScore, StringArray(input.MatchedSkills), StringArray(input.MissingSkills),
			input.Status, input.ErrorMessage,
		)
		if err != nil {
			return fmt.Errorf("failed to insert analysis for %s: %w", input.Filename, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListAnalysesBySession retrieves a session's analyses ranked by final score.
// Ties break ascending by filename then ID so the order is deterministic.
func (db *DB) ListAnalysesBySession(ctx context.Context, sessionID uuid.UUID) ([]ResumeAnalysis, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, resume_id, filename, overall_score, skills_score,
		        experience_score, education_score, final_score,
		        matched_skills, missing_skills, status, error_message, created_at
		 FROM resume_analyses
		 WHERE session_id = $1
		 ORDER BY final_score DESC, filename ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []ResumeAnalysis
	for rows.Next() {
		var a ResumeAnalysis
		if err := rows.Scan(&a.ID, &a.SessionID, &a.ResumeID, &a.Filename,
			&a.OverallScore, &a.SkillsScore, &a.ExperienceScore, &a.EducationScore,
			&a.FinalScore, &a.MatchedSkills, &a.MissingSkills,
			&a.Status, &a.ErrorMessage, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}
