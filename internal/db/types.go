package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobPosting represents a job description that resumes are screened against.
type JobPosting struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements,omitempty"`
	SourceURL    string     `json:"source_url,omitempty"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Session lifecycle states.
const (
	SessionStatusPending   = "pending"
	SessionStatusScreening = "screening"
	SessionStatusCompleted = "completed"
	SessionStatusFailed    = "failed"
)

// ScreeningSession represents one batch run of resume-to-job comparisons.
type ScreeningSession struct {
	ID                  uuid.UUID  `json:"id"`
	JobPostingID        uuid.UUID  `json:"job_posting_id"`
	Name                string     `json:"name"`
	Status              string     `json:"status"`
	SimilarityThreshold float64    `json:"similarity_threshold"`
	CreatedBy           *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

// Resume represents an uploaded resume with its extracted text and structure.
type Resume struct {
	ID              uuid.UUID   `json:"id"`
	SessionID       uuid.UUID   `json:"session_id"`
	Filename        string      `json:"filename"`
	ContentText     string      `json:"content_text,omitempty"`
	Skills          StringArray `json:"skills"`
	Education       StringArray `json:"education"`
	Experience      StringArray `json:"experience"`
	Contact         Contact     `json:"contact"`
	YearsExperience *int        `json:"years_experience,omitempty"`
	UploadedAt      time.Time   `json:"uploaded_at"`
}

// Contact holds contact details extracted from a resume.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Analysis status values. A failed analysis means a sub-score could not be
// produced; such candidates are excluded from the ranking rather than scored 0.
const (
	AnalysisStatusScored = "scored"
	AnalysisStatusFailed = "failed"
)

// ResumeAnalysis is the score record for one resume in one screening run.
// Records are written once per run and immutable thereafter.
type ResumeAnalysis struct {
	ID              uuid.UUID   `json:"id"`
	SessionID       uuid.UUID   `json:"session_id"`
	ResumeID        uuid.UUID   `json:"resume_id"`
	Filename        string      `json:"filename"`
	OverallScore    float64     `json:"overall_score"`
	SkillsScore     float64     `json:"skills_score"`
	ExperienceScore float64     `json:"experience_score"`
	EducationScore  float64     `json:"education_score"`
	FinalScore      float64     `json:"final_score"`
	MatchedSkills   StringArray `json:"matched_skills"`
	MissingSkills   StringArray `json:"missing_skills"`
	Status          string      `json:"status"`
	ErrorMessage    string      `json:"error_message,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Statistics holds aggregate counts across the whole store.
type Statistics struct {
	TotalUsers        int     `json:"total_users"`
	TotalJobPostings  int     `json:"total_job_postings"`
	TotalSessions     int     `json:"total_sessions"`
	TotalAnalyses     int     `json:"total_analyses"`
	AverageFinalScore float64 `json:"average_final_score"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
