package screening

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/matching"
	"github.com/jonathan/smarthire/internal/scoring"
)

type fakeStore struct {
	session  *db.ScreeningSession
	posting  *db.JobPosting
	resumes  []db.Resume
	saved    []db.AnalysisCreateInput
	statuses []string

	replaceErr error
}

func (f *fakeStore) GetSession(_ context.Context, id uuid.UUID) (*db.ScreeningSession, error) {
	if f.session == nil || f.session.ID != id {
		return nil, nil
	}
	return f.session, nil
}

func (f *fakeStore) GetJobPosting(_ context.Context, id uuid.UUID) (*db.JobPosting, error) {
	if f.posting == nil || f.posting.ID != id {
		return nil, nil
	}
	return f.posting, nil
}

func (f *fakeStore) ListResumesBySession(_ context.Context, _ uuid.UUID) ([]db.Resume, error) {
	return f.resumes, nil
}

func (f *fakeStore) ReplaceSessionAnalyses(_ context.Context, _ uuid.UUID, inputs []db.AnalysisCreateInput) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.saved = inputs
	return nil
}

func (f *fakeStore) UpdateSessionStatus(_ context.Context, _ uuid.UUID, status string) error {
	f.statuses = append(f.statuses, status)
	return nil
}

// scriptedMatcher fails any resume whose text contains "broken".
type scriptedMatcher struct{}

func (scriptedMatcher) Match(_ context.Context, _, resumeText string) (*matching.Result, error) {
	if strings.Contains(resumeText, "broken") {
		return nil, errors.New("embedding failed")
	}
	breakdown := scoring.Breakdown{Overall: 0.8, Skills: 0.9, Experience: 0.6, Education: 0.5}
	return &matching.Result{
		Breakdown:     breakdown,
		FinalScore:    scoring.FinalScore(breakdown),
		MatchedSkills: []string{"go"},
	}, nil
}

func newFakeStore(resumeTexts ...string) *fakeStore {
	sessionID := uuid.New()
	postingID := uuid.New()
	resumes := make([]db.Resume, len(resumeTexts))
	for i, text := range resumeTexts {
		resumes[i] = db.Resume{
			ID:          uuid.New(),
			SessionID:   sessionID,
			Filename:    "resume" + string(rune('a'+i)) + ".pdf",
			ContentText: text,
		}
	}
	return &fakeStore{
		session: &db.ScreeningSession{ID: sessionID, JobPostingID: postingID, Status: db.SessionStatusPending},
		posting: &db.JobPosting{ID: postingID, Description: "go engineer"},
		resumes: resumes,
	}
}

func TestRunner_Run(t *testing.T) {
	store := newFakeStore("go developer", "python developer")
	runner := NewRunner(store, scriptedMatcher{}, zap.NewNop(), 2)

	summary, err := runner.Run(context.Background(), store.session.ID)
	require.NoError(t, err)

	assert.Equal(t, db.SessionStatusCompleted, summary.Status)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Scored)
	assert.Equal(t, 0, summary.Failed)

	require.Len(t, store.saved, 2)
	for _, saved := range store.saved {
		assert.Equal(t, db.AnalysisStatusScored, saved.Status)
		assert.InDelta(t, 0.76, saved.FinalScore, 1e-9)
	}
	assert.Equal(t, []string{db.SessionStatusScreening, db.SessionStatusCompleted}, store.statuses)
}

func TestRunner_Run_PartialFailure(t *testing.T) {
	store := newFakeStore("go developer", "broken resume")
	runner := NewRunner(store, scriptedMatcher{}, zap.NewNop(), 1)

	summary, err := runner.Run(context.Background(), store.session.ID)
	require.NoError(t, err)

	assert.Equal(t, db.SessionStatusCompleted, summary.Status)
	assert.Equal(t, 1, summary.Scored)
	assert.Equal(t, 1, summary.Failed)

	require.Len(t, store.saved, 2)
	assert.Equal(t, db.AnalysisStatusScored, store.saved[0].Status)
	assert.Equal(t, db.AnalysisStatusFailed, store.saved[1].Status)
	assert.Contains(t, store.saved[1].ErrorMessage, "embedding failed")
}

func TestRunner_Run_AllFailed(t *testing.T) {
	store := newFakeStore("broken one", "broken two")
	runner := NewRunner(store, scriptedMatcher{}, zap.NewNop(), 0)

	summary, err := runner.Run(context.Background(), store.session.ID)
	require.NoError(t, err)

	assert.Equal(t, db.SessionStatusFailed, summary.Status)
	assert.Equal(t, 0, summary.Scored)
}

func TestRunner_Run_NoResumes(t *testing.T) {
	store := newFakeStore()
	runner := NewRunner(store, scriptedMatcher{}, zap.NewNop(), 1)

	_, err := runner.Run(context.Background(), store.session.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resumes")
}

func TestRunner_Run_UnknownSession(t *testing.T) {
	store := newFakeStore("go developer")
	runner := NewRunner(store, scriptedMatcher{}, zap.NewNop(), 1)

	_, err := runner.Run(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunner_Run_PersistFailure(t *testing.T) {
	store := newFakeStore("go developer")
	store.replaceErr = errors.New("connection reset")
	runner := NewRunner(store, scriptedMatcher{}, zap.NewNop(), 1)

	_, err := runner.Run(context.Background(), store.session.ID)
	require.Error(t, err)
	assert.Equal(t, []string{db.SessionStatusScreening, db.SessionStatusFailed}, store.statuses)
}

func TestBuildReport(t *testing.T) {
	analyses := []db.ResumeAnalysis{
		{Filename: "a.pdf", FinalScore: 0.85, Status: db.AnalysisStatusScored},
		{Filename: "b.pdf", FinalScore: 0.45, Status: db.AnalysisStatusScored},
		{Filename: "c.pdf", Status: db.AnalysisStatusFailed, ErrorMessage: "corrupted file"},
	}

	report := BuildReport(analyses, 0.5)

	require.Len(t, report.Ranked, 2)
	assert.Equal(t, 1, report.Ranked[0].Rank)
	assert.Equal(t, "Excellent Match", report.Ranked[0].Category)
	assert.True(t, report.Ranked[0].AboveThreshold)
	assert.Equal(t, 2, report.Ranked[1].Rank)
	assert.Equal(t, "Fair Match", report.Ranked[1].Category)
	assert.False(t, report.Ranked[1].AboveThreshold)

	require.Len(t, report.Unscored, 1)
	assert.Equal(t, "c.pdf", report.Unscored[0].Filename)

	assert.Equal(t, 2, report.Scores.Count)
	assert.InDelta(t, 0.65, report.Scores.Mean, 1e-9)
	assert.Equal(t, 1, report.Categories["Excellent Match"])
	assert.Equal(t, 1, report.Categories["Fair Match"])
}

func TestBuildReport_OrdersAnalysesDeterministically(t *testing.T) {
	idLow := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	idHigh := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	analyses := []db.ResumeAnalysis{
		{ID: uuid.New(), Filename: "low.pdf", FinalScore: 0.3, Status: db.AnalysisStatusScored},
		{ID: idHigh, Filename: "tied.pdf", FinalScore: 0.7, Status: db.AnalysisStatusScored},
		{ID: uuid.New(), Filename: "best.pdf", FinalScore: 0.9, Status: db.AnalysisStatusScored},
		{ID: idLow, Filename: "tied.pdf", FinalScore: 0.7, Status: db.AnalysisStatusScored},
	}

	report := BuildReport(analyses, 0.5)

	require.Len(t, report.Ranked, 4)
	assert.Equal(t, "best.pdf", report.Ranked[0].Analysis.Filename)
	assert.Equal(t, idLow, report.Ranked[1].Analysis.ID)
	assert.Equal(t, idHigh, report.Ranked[2].Analysis.ID)
	assert.Equal(t, "low.pdf", report.Ranked[3].Analysis.Filename)
	for i, r := range report.Ranked {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil, 0.5)

	assert.Empty(t, report.Ranked)
	assert.Empty(t, report.Unscored)
	assert.Equal(t, 0, report.Scores.Count)
}
