package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/smarthire/internal/config"
	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/ingestion"
	"github.com/jonathan/smarthire/internal/screening"
	"github.com/jonathan/smarthire/internal/server/ratelimit"
)

// fakeDB is an in-memory DBClient for handler tests.
type fakeDB struct {
	users     map[uuid.UUID]*db.User
	postings  map[uuid.UUID]*db.JobPosting
	sessions  map[uuid.UUID]*db.ScreeningSession
	resumes   map[uuid.UUID][]db.Resume
	analyses  map[uuid.UUID][]db.ResumeAnalysis
	createErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    make(map[uuid.UUID]*db.User),
		postings: make(map[uuid.UUID]*db.JobPosting),
		sessions: make(map[uuid.UUID]*db.ScreeningSession),
		resumes:  make(map[uuid.UUID][]db.Resume),
		analyses: make(map[uuid.UUID][]db.ResumeAnalysis),
	}
}

func (f *fakeDB) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email}
	return id, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	return f.users[id], nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func (f *fakeDB) DeleteUser(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeDB) CreateJobPosting(_ context.Context, input *db.JobPostingCreateInput) (*db.JobPosting, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := &db.JobPosting{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Requirements: input.Requirements,
		SourceURL:    input.SourceURL,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    time.Now(),
	}
	f.postings[p.ID] = p
	return p, nil
}

func (f *fakeDB) GetJobPosting(_ context.Context, id uuid.UUID) (*db.JobPosting, error) {
	return f.postings[id], nil
}

func (f *fakeDB) ListJobPostings(_ context.Context, limit int) ([]db.JobPosting, error) {
	var out []db.JobPosting
	for _, p := range f.postings {
		if len(out) == limit {
			break
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeDB) DeleteJobPosting(_ context.Context, id uuid.UUID) error {
	delete(f.postings, id)
	return nil
}

func (f *fakeDB) CreateSession(_ context.Context, input *db.SessionCreateInput) (*db.ScreeningSession, error) {
	sess := &db.ScreeningSession{
		ID:                  uuid.New(),
		JobPostingID:        input.JobPostingID,
		Name:                input.Name,
		Status:              db.SessionStatusPending,
		SimilarityThreshold: input.SimilarityThreshold,
		CreatedBy:           input.CreatedBy,
		CreatedAt:           time.Now(),
	}
	f.sessions[sess.ID] = sess
	return sess, nil
}

func (f *fakeDB) GetSession(_ context.Context, id uuid.UUID) (*db.ScreeningSession, error) {
	return f.sessions[id], nil
}

func (f *fakeDB) ListSessions(_ context.Context, limit int) ([]db.ScreeningSession, error) {
	var out []db.ScreeningSession
	for _, s := range f.sessions {
		if len(out) == limit {
			break
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeDB) CreateResume(_ context.Context, input *db.ResumeCreateInput) (*db.Resume, error) {
	r := db.Resume{
		ID:              uuid.New(),
		SessionID:       input.SessionID,
		Filename:        input.Filename,
		ContentText:     input.ContentText,
		Skills:          input.Skills,
		Education:       input.Education,
		Experience:      input.Experience,
		Contact:         input.Contact,
		YearsExperience: input.YearsExperience,
		UploadedAt:      time.Now(),
	}
	f.resumes[input.SessionID] = append(f.resumes[input.SessionID], r)
	return &r, nil
}

func (f *fakeDB) GetResume(_ context.Context, id uuid.UUID) (*db.Resume, error) {
	for _, resumes := range f.resumes {
		for _, r := range resumes {
			if r.ID == id {
				return &r, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeDB) ListResumesBySession(_ context.Context, sessionID uuid.UUID) ([]db.Resume, error) {
	return f.resumes[sessionID], nil
}

func (f *fakeDB) CountResumesBySession(_ context.Context, sessionID uuid.UUID) (int, error) {
	return len(f.resumes[sessionID]), nil
}

func (f *fakeDB) ListAnalysesBySession(_ context.Context, sessionID uuid.UUID) ([]db.ResumeAnalysis, error) {
	return f.analyses[sessionID], nil
}

func (f *fakeDB) GetStatistics(_ context.Context) (*db.Statistics, error) {
	return &db.Statistics{
		TotalUsers:       len(f.users),
		TotalJobPostings: len(f.postings),
		TotalSessions:    len(f.sessions),
	}, nil
}

// fakeRunner records the session it was asked to screen.
type fakeRunner struct {
	summary *screening.RunSummary
	err     error
	lastID  uuid.UUID
}

func (f *fakeRunner) Run(_ context.Context, sessionID uuid.UUID) (*screening.RunSummary, error) {
	f.lastID = sessionID
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

// fakeFetcher returns a canned posting.
type fakeFetcher struct {
	posting *ingestion.Posting
	err     error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*ingestion.Posting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.posting, nil
}

type testEnv struct {
	server *Server
	db     *fakeDB
	runner *fakeRunner
	fetch  *fakeFetcher
	token  string
	userID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fdb := newFakeDB()
	runner := &fakeRunner{summary: &screening.RunSummary{Status: db.SessionStatusCompleted}}
	fetch := &fakeFetcher{posting: &ingestion.Posting{Title: "Backend Engineer", Description: "Go and PostgreSQL"}}

	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	userService := NewUserService(fdb, passwordConfig)

	s := &Server{
		db:          fdb,
		cfg:         &config.Config{MaxFileSizeMB: 1, AllowedExtensions: []string{"pdf", "docx"}, SimilarityThreshold: 0.5},
		logger:      zap.NewNop(),
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
		jwtService:  jwtService,
		userService: userService,
		validator:   validator.New(),
		runner:      runner,
		fetcher:     fetch,
	}
	s.authHandler = NewAuthHandler(userService, jwtService)

	userID, err := fdb.CreateUser(context.Background(), "Test User", "test@example.com")
	require.NoError(t, err)
	token, err := jwtService.GenerateToken(userID)
	require.NoError(t, err)

	return &testEnv{server: s, db: fdb, runner: runner, fetch: fetch, token: token, userID: userID}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	rec := httptest.NewRecorder()
	e.server.routes().ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestCreateJobPosting(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/job-postings", map[string]string{
		"title":       "Backend Engineer",
		"description": "We need Go and PostgreSQL experience.",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	posting := decodeJSON[db.JobPosting](t, rec)
	assert.Equal(t, "Backend Engineer", posting.Title)
	require.NotNil(t, posting.CreatedBy)
	assert.Equal(t, env.userID, *posting.CreatedBy)
}

func TestCreateJobPostingValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/job-postings", map[string]string{
		"description": "missing title",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobPostingRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	env.token = "not-a-token"

	rec := env.request(t, http.MethodPost, "/job-postings", map[string]string{
		"title":       "x",
		"description": "y",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIngestJobPosting(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/job-postings/ingest", map[string]string{
		"url": "https://jobs.example.com/backend",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	posting := decodeJSON[db.JobPosting](t, rec)
	assert.Equal(t, "Backend Engineer", posting.Title)
	assert.Equal(t, "https://jobs.example.com/backend", posting.SourceURL)
}

func TestIngestJobPostingFetchFailure(t *testing.T) {
	env := newTestEnv(t)
	env.fetch.err = fmt.Errorf("connection refused")

	rec := env.request(t, http.MethodPost, "/job-postings/ingest", map[string]string{
		"url": "https://jobs.example.com/down",
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetJobPostingNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/job-postings/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeJobPosting(t *testing.T) {
	env := newTestEnv(t)
	posting, err := env.db.CreateJobPosting(context.Background(), &db.JobPostingCreateInput{
		Title:        "Backend Engineer",
		Description:  "5+ years of experience with python and aws.",
		Requirements: "Bachelor degree required.",
	})
	require.NoError(t, err)

	rec := env.request(t, http.MethodGet, "/job-postings/"+posting.ID.String()+"/analysis", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	analysis := decodeJSON[map[string]any](t, rec)
	assert.Contains(t, analysis["skills"], "python")
	assert.Contains(t, analysis["skills"], "aws")
	assert.EqualValues(t, 5, analysis["required_experience_years"])
}

func TestCreateSessionDefaultsThreshold(t *testing.T) {
	env := newTestEnv(t)
	posting, err := env.db.CreateJobPosting(context.Background(), &db.JobPostingCreateInput{
		Title: "Backend Engineer", Description: "Go",
	})
	require.NoError(t, err)

	rec := env.request(t, http.MethodPost, "/sessions", map[string]any{
		"job_posting_id": posting.ID,
		"name":           "August batch",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	session := decodeJSON[db.ScreeningSession](t, rec)
	assert.Equal(t, 0.5, session.SimilarityThreshold)
	assert.Equal(t, db.SessionStatusPending, session.Status)
}

func TestCreateSessionUnknownPosting(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/sessions", map[string]any{
		"job_posting_id": uuid.New(),
		"name":           "orphan",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScreenSession(t *testing.T) {
	env := newTestEnv(t)
	session := seedSession(t, env)
	env.db.resumes[session.ID] = []db.Resume{{ID: uuid.New(), SessionID: session.ID, Filename: "a.pdf"}}

	rec := env.request(t, http.MethodPost, "/sessions/"+session.ID.String()+"/screen", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.ID, env.runner.lastID)
}

func TestScreenSessionWithoutResumes(t *testing.T) {
	env := newTestEnv(t)
	session := seedSession(t, env)

	rec := env.request(t, http.MethodPost, "/sessions/"+session.ID.String()+"/screen", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadResumeRejections(t *testing.T) {
	env := newTestEnv(t)
	session := seedSession(t, env)

	tests := []struct {
		name       string
		filename   string
		content    []byte
		wantStatus int
	}{
		{
			name:       "unsupported extension",
			filename:   "resume.txt",
			content:    []byte("plain text"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "corrupted pdf",
			filename:   "resume.pdf",
			content:    []byte("not really a pdf"),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "oversized file",
			filename:   "resume.pdf",
			content:    bytes.Repeat([]byte("a"), 2*1024*1024),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			part, err := mw.CreateFormFile("files", tt.filename)
			require.NoError(t, err)
			_, err = part.Write(tt.content)
			require.NoError(t, err)
			require.NoError(t, mw.Close())

			req := httptest.NewRequest(http.MethodPost, "/sessions/"+session.ID.String()+"/resumes", &buf)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			req.Header.Set("Authorization", "Bearer "+env.token)

			rec := httptest.NewRecorder()
			env.server.routes().ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)

			resp := decodeJSON[UploadResponse](t, rec)
			require.Len(t, resp.Failed, 1)
			assert.Equal(t, tt.filename, resp.Failed[0].Filename)
		})
	}
}

func TestSessionResults(t *testing.T) {
	env := newTestEnv(t)
	session := seedSession(t, env)
	env.db.analyses[session.ID] = []db.ResumeAnalysis{
		{ID: uuid.New(), SessionID: session.ID, Filename: "alice.pdf", FinalScore: 0.76, Status: db.AnalysisStatusScored},
		{ID: uuid.New(), SessionID: session.ID, Filename: "bob.pdf", FinalScore: 0.31, Status: db.AnalysisStatusScored},
	}

	rec := env.request(t, http.MethodGet, "/sessions/"+session.ID.String()+"/results", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	results := decodeJSON[ResultsResponse](t, rec)
	assert.Equal(t, 2, results.Count)
	assert.Equal(t, "alice.pdf", results.Results[0].Filename)
}

func TestSessionReport(t *testing.T) {
	env := newTestEnv(t)
	session := seedSession(t, env)
	env.db.analyses[session.ID] = []db.ResumeAnalysis{
		{ID: uuid.New(), SessionID: session.ID, Filename: "alice.pdf", FinalScore: 0.76, Status: db.AnalysisStatusScored},
		{ID: uuid.New(), SessionID: session.ID, Filename: "carol.pdf", Status: db.AnalysisStatusFailed, ErrorMessage: "no text"},
	}

	rec := env.request(t, http.MethodGet, "/sessions/"+session.ID.String()+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	report := decodeJSON[screening.Report](t, rec)
	require.Len(t, report.Ranked, 1)
	assert.Equal(t, 1, report.Ranked[0].Rank)
	assert.Equal(t, "Good Match", report.Ranked[0].Category)
	assert.True(t, report.Ranked[0].AboveThreshold)
	require.Len(t, report.Unscored, 1)
	assert.Equal(t, "carol.pdf", report.Unscored[0].Filename)
}

func TestSessionResultsCSV(t *testing.T) {
	env := newTestEnv(t)
	session := seedSession(t, env)
	env.db.analyses[session.ID] = []db.ResumeAnalysis{
		{ID: uuid.New(), SessionID: session.ID, Filename: "alice.pdf", FinalScore: 0.76, Status: db.AnalysisStatusScored},
	}

	rec := env.request(t, http.MethodGet, "/sessions/"+session.ID.String()+"/results.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "alice.pdf")
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	// A freshly issued token must pass validation.
	claims, err := env.server.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetResume(t *testing.T) {
	env := newTestEnv(t)
	session := seedSession(t, env)
	resume, err := env.db.CreateResume(context.Background(), &db.ResumeCreateInput{
		SessionID: session.ID,
		Filename:  "jane.pdf",
		Skills:    []string{"go", "postgresql"},
	})
	require.NoError(t, err)

	rec := env.request(t, http.MethodGet, "/resumes/"+resume.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeJSON[db.Resume](t, rec)
	assert.Equal(t, "jane.pdf", got.Filename)
	assert.Equal(t, db.StringArray{"go", "postgresql"}, got.Skills)

	rec = env.request(t, http.MethodGet, "/resumes/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodDelete, "/auth/account", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, env.db.users, env.userID)

	// The account is gone; a second delete with the same token is a 404.
	rec = env.request(t, http.MethodDelete, "/auth/account", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	env.server.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func seedSession(t *testing.T, env *testEnv) *db.ScreeningSession {
	t.Helper()
	posting, err := env.db.CreateJobPosting(context.Background(), &db.JobPostingCreateInput{
		Title: "Backend Engineer", Description: "Go",
	})
	require.NoError(t, err)
	session, err := env.db.CreateSession(context.Background(), &db.SessionCreateInput{
		JobPostingID:        posting.ID,
		Name:                "batch",
		SimilarityThreshold: 0.5,
	})
	require.NoError(t, err)
	return session
}
