package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/matching"
	"github.com/jonathan/smarthire/internal/server/middleware"
	"github.com/jonathan/smarthire/internal/types"
)

// ListJobPostingsResponse represents the response for listing job postings
type ListJobPostingsResponse struct {
	Postings []db.JobPosting `json:"postings"`
	Count    int             `json:"count"`
}

// handleCreateJobPosting creates a job posting from inline text
func (s *Server) handleCreateJobPosting(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobPostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	input := &db.JobPostingCreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
	}
	if userID, err := middleware.GetUserID(r); err == nil {
		input.CreatedBy = &userID
	}

	posting, err := s.db.CreateJobPosting(r.Context(), input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, posting)
}

// handleIngestJobPosting creates a job posting by fetching a URL
func (s *Server) handleIngestJobPosting(w http.ResponseWriter, r *http.Request) {
	var req types.IngestJobPostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	fetched, err := s.fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Failed to fetch posting: "+err.Error())
		return
	}

	input := &db.JobPostingCreateInput{
		Title:       fetched.Title,
		Description: fetched.Description,
		SourceURL:   req.URL,
	}
	if input.Title == "" {
		input.Title = req.URL
	}
	if userID, err := middleware.GetUserID(r); err == nil {
		input.CreatedBy = &userID
	}

	posting, err := s.db.CreateJobPosting(r.Context(), input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, posting)
}

// handleListJobPostings lists job postings, newest first
func (s *Server) handleListJobPostings(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)

	postings, err := s.db.ListJobPostings(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ListJobPostingsResponse{
		Postings: postings,
		Count:    len(postings),
	})
}

// handleGetJobPosting retrieves a job posting by its ID
func (s *Server) handleGetJobPosting(w http.ResponseWriter, r *http.Request) {
	postingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job posting ID")
		return
	}

	posting, err := s.db.GetJobPosting(r.Context(), postingID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if posting == nil {
		s.errorResponse(w, http.StatusNotFound, "Job posting not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, posting)
}

// handleDeleteJobPosting removes a job posting
func (s *Server) handleDeleteJobPosting(w http.ResponseWriter, r *http.Request) {
	postingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job posting ID")
		return
	}

	if err := s.db.DeleteJobPosting(r.Context(), postingID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnalyzeJobPosting returns the keyword analysis of a job posting
func (s *Server) handleAnalyzeJobPosting(w http.ResponseWriter, r *http.Request) {
	postingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job posting ID")
		return
	}

	posting, err := s.db.GetJobPosting(r.Context(), postingID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if posting == nil {
		s.errorResponse(w, http.StatusNotFound, "Job posting not found")
		return
	}

	text := posting.Description
	if posting.Requirements != "" {
		text += "\n" + posting.Requirements
	}
	s.jsonResponse(w, http.StatusOK, matching.AnalyzeJob(text))
}

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}
