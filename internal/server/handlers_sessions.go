package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/server/middleware"
	"github.com/jonathan/smarthire/internal/types"
)

// SessionResponse wraps a session with its resume count
type SessionResponse struct {
	Session     *db.ScreeningSession `json:"session"`
	ResumeCount int                  `json:"resume_count"`
}

// ListSessionsResponse represents the response for listing sessions
type ListSessionsResponse struct {
	Sessions []db.ScreeningSession `json:"sessions"`
	Count    int                   `json:"count"`
}

// handleCreateSession creates a screening session for a job posting
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	posting, err := s.db.GetJobPosting(r.Context(), req.JobPostingID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if posting == nil {
		s.errorResponse(w, http.StatusNotFound, "Job posting not found")
		return
	}

	threshold := s.cfg.SimilarityThreshold
	if req.SimilarityThreshold != nil {
		threshold = *req.SimilarityThreshold
	}

	input := &db.SessionCreateInput{
		JobPostingID:        req.JobPostingID,
		Name:                req.Name,
		SimilarityThreshold: threshold,
	}
	if userID, err := middleware.GetUserID(r); err == nil {
		input.CreatedBy = &userID
	}

	session, err := s.db.CreateSession(r.Context(), input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, session)
}

// handleListSessions lists screening sessions, newest first
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)

	sessions, err := s.db.ListSessions(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ListSessionsResponse{
		Sessions: sessions,
		Count:    len(sessions),
	})
}

// handleGetSession retrieves a session along with its resume count
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	count, err := s.db.CountResumesBySession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SessionResponse{
		Session:     session,
		ResumeCount: count,
	})
}

// handleScreenSession scores every resume in the session against its job posting
func (s *Server) handleScreenSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	count, err := s.db.CountResumesBySession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if count == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Session has no resumes to screen")
		return
	}

	summary, err := s.runner.Run(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Screening failed: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}
