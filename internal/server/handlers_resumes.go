package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/parser"
)

// UploadFailure describes one file that could not be ingested
type UploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResponse reports the outcome of a resume upload batch
type UploadResponse struct {
	Uploaded []db.Resume     `json:"uploaded"`
	Failed   []UploadFailure `json:"failed,omitempty"`
}

// ListResumesResponse represents the response for listing session resumes
type ListResumesResponse struct {
	Resumes []db.Resume `json:"resumes"`
	Count   int         `json:"count"`
}

// handleUploadResumes accepts one or more resume files for a session.
// Files are sent as multipart form parts named "files" (or a single "file").
// Each file is parsed independently; a bad file fails alone, not the batch.
func (s *Server) handleUploadResumes(w http.ResponseWriter, r *http.Request) {
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

	// The form buffer only needs one file in memory at a time; larger
	// uploads spill to disk and are rejected per file below.
	if err := r.ParseMultipartForm(s.cfg.MaxFileSizeBytes()); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		files = r.MultipartForm.File["file"]
	}
	if len(files) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "No files provided")
		return
	}

	resp := UploadResponse{Uploaded: []db.Resume{}}
	var firstErr error
	for _, fh := range files {
		resume, err := s.ingestResumeFile(r, sessionID, fh)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.logger.Warn("resume upload rejected",
				zap.String("session_id", sessionID.String()),
				zap.String("filename", fh.Filename),
				zap.Error(err))
			resp.Failed = append(resp.Failed, UploadFailure{
				Filename: fh.Filename,
				Error:    err.Error(),
			})
			continue
		}
		resp.Uploaded = append(resp.Uploaded, *resume)
	}

	status := http.StatusCreated
	if len(resp.Uploaded) == 0 {
		// Nothing was stored; report the first failure's status.
		status = HTTPStatus(firstErr)
	}
	s.jsonResponse(w, status, resp)
}

// ingestResumeFile validates, parses and stores a single uploaded file.
func (s *Server) ingestResumeFile(r *http.Request, sessionID uuid.UUID, fh *multipart.FileHeader) (*db.Resume, error) {
	if fh.Size > s.cfg.MaxFileSizeBytes() {
		return nil, &ErrFileTooLarge{Filename: fh.Filename, LimitMB: s.cfg.MaxFileSizeMB}
	}
	if !s.cfg.ExtensionAllowed(parser.Extension(fh.Filename)) {
		return nil, &ErrUnsupportedFile{Filename: fh.Filename}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, &ErrCorruptedFile{Filename: fh.Filename, Cause: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxFileSizeBytes()+1))
	if err != nil {
		return nil, &ErrCorruptedFile{Filename: fh.Filename, Cause: err}
	}
	if int64(len(data)) > s.cfg.MaxFileSizeBytes() {
		return nil, &ErrFileTooLarge{Filename: fh.Filename, LimitMB: s.cfg.MaxFileSizeMB}
	}

	text, err := parser.ExtractText(fh.Filename, data)
	if err != nil {
		if errors.Is(err, parser.ErrUnsupportedFormat) {
			return nil, &ErrUnsupportedFile{Filename: fh.Filename}
		}
		return nil, &ErrCorruptedFile{Filename: fh.Filename, Cause: err}
	}

	info := parser.Extract(text)
	resume, err := s.db.CreateResume(r.Context(), &db.ResumeCreateInput{
		SessionID:   sessionID,
		Filename:    fh.Filename,
		ContentText: text,
		Skills:      info.Skills,
		Education:   info.Education,
		Experience:  info.Experience,
		Contact: db.Contact{
			Email:    info.Contact.Email,
			Phone:    info.Contact.Phone,
			LinkedIn: info.Contact.LinkedIn,
			GitHub:   info.Contact.GitHub,
		},
		YearsExperience: info.YearsExperience,
	})
	if err != nil {
		return nil, err
	}
	return resume, nil
}

// handleGetResume retrieves a single resume with its extracted structure
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleListResumes lists the resumes uploaded to a session
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	resumes, err := s.db.ListResumesBySession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ListResumesResponse{
		Resumes: resumes,
		Count:   len(resumes),
	})
}
