package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/export"
	"github.com/jonathan/smarthire/internal/screening"
)

// ResultsResponse lists a session's analyses in ranking order
type ResultsResponse struct {
	SessionID uuid.UUID           `json:"session_id"`
	Status    string              `json:"status"`
	Results   []db.ResumeAnalysis `json:"results"`
	Count     int                 `json:"count"`
}

// handleSessionResults returns the raw analyses for a session, ranked
func (s *Server) handleSessionResults(w http.ResponseWriter, r *http.Request) {
	session, analyses, ok := s.loadSessionResults(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, ResultsResponse{
		SessionID: session.ID,
		Status:    session.Status,
		Results:   analyses,
		Count:     len(analyses),
	})
}

// handleSessionReport returns the ranked report with categories and stats
func (s *Server) handleSessionReport(w http.ResponseWriter, r *http.Request) {
	session, analyses, ok := s.loadSessionResults(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, screening.BuildReport(analyses, session.SimilarityThreshold))
}

// handleSessionResultsCSV streams the ranked report as a CSV download
func (s *Server) handleSessionResultsCSV(w http.ResponseWriter, r *http.Request) {
	session, analyses, ok := s.loadSessionResults(w, r)
	if !ok {
		return
	}

	report := screening.BuildReport(analyses, session.SimilarityThreshold)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "screening-"+session.ID.String()+".csv"))
	if err := export.WriteCSV(w, report); err != nil {
		// Headers are already out; all we can do is log.
		s.logger.Error("csv export failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
	}
}

// loadSessionResults fetches the session and its analyses for the {id} path
// value, writing the error response itself when something is off.
func (s *Server) loadSessionResults(w http.ResponseWriter, r *http.Request) (*db.ScreeningSession, []db.ResumeAnalysis, bool) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return nil, nil, false
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, nil, false
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return nil, nil, false
	}

	analyses, err := s.db.ListAnalysesBySession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, nil, false
	}
	return session, analyses, true
}
