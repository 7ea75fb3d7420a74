package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-profiler/internal/ingestion"
	"github.com/jonathan/resume-profiler/internal/logging"
	"github.com/jonathan/resume-profiler/internal/pipeline"
	"github.com/jonathan/resume-profiler/internal/server/middleware"
	"github.com/jonathan/resume-profiler/internal/types"
	"go.uber.org/zap"
)

// uploadField is the multipart form field that carries the document.
const uploadField = "file"

// multipartOverhead is allowed on top of the document limit for boundaries
// and part headers.
const multipartOverhead = 64 << 10

// handleParseResume accepts a multipart upload, parses it and stores the result.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	limit := s.workflow.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			s.failure(w, r, &ingestion.TooLargeError{Size: tooBig.Limit, Limit: limit})
		case errors.Is(err, http.ErrMissingFile):
			s.errorResponse(w, http.StatusBadRequest, "No file uploaded.")
		default:
			s.errorResponse(w, http.StatusBadRequest, "Invalid multipart request: "+err.Error())
		}
		return
	}
	defer func() { _ = file.Close() }()

	filename := filepath.Base(header.Filename)
	if err := ingestion.ValidateUpload(filename, header.Size, limit); err != nil {
		s.failure(w, r, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	result, err := s.workflow.ProcessDocument(r.Context(), filename, data)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.storeResult(w, r, userID, result)
}

// handleImportResume fetches a résumé from a URL, parses it and stores the result.
func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.ImportURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := s.workflow.ProcessURL(r.Context(), req.URL, req.UseBrowser && s.allowBrowser)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.storeResult(w, r, userID, result)
}

func (s *Server) storeResult(w http.ResponseWriter, r *http.Request, userID uuid.UUID, result *pipeline.Result) {
	resume := &types.Resume{
		UserID:       userID,
		FileName:     result.Document.FileName,
		RawText:      result.Document.RawText,
		ParsedData:   result.Profile,
		ResumeHealth: result.Profile.ResumeHealth,
	}
	if err := s.store.CreateResume(r.Context(), resume); err != nil {
		s.failure(w, r, err)
		return
	}

	logging.WithFields(s.logger,
		zap.Stringer(logging.FieldUserID, userID),
		zap.Stringer(logging.FieldResumeID, resume.ID),
	).Info("stored parsed résumé",
		zap.String("file_name", resume.FileName),
		zap.Int("score", result.Profile.ResumeHealth.Score),
	)

	s.jsonResponse(w, http.StatusCreated, types.ParseResponse{
		ResumeID:       resume.ID,
		FileName:       resume.FileName,
		RawText:        resume.RawText,
		ParsedData:     resume.ParsedData,
		ProfileExports: result.Exports,
	})
}

// handleListResumes returns the caller's résumés, newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	resumes, err := s.store.ListResumes(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	summaries := make([]types.ResumeSummary, 0, len(resumes))
	for i := range resumes {
		summaries = append(summaries, resumes[i].Summary())
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": summaries,
		"count":   len(summaries),
	})
}

// handleGetResume returns one stored résumé.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume applies user edits. Edited parsed data without an
// explicit health report is scored again.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.resumeID(w, r)
	if !ok {
		return
	}

	var upd types.ResumeUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if upd.IsEmpty() {
		s.failure(w, r, &ErrValidation{Field: "body", Message: "no updatable fields provided"})
		return
	}

	if upd.ParsedData != nil && upd.ResumeHealth == nil {
		report := s.workflow.Rescore(upd.ParsedData)
		upd.ResumeHealth = &report
	}

	resume, err := s.store.UpdateResume(r.Context(), userID, id, upd)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if resume == nil {
		s.failure(w, r, &ErrResumeNotFound{ResumeID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume removes a stored résumé.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.resumeID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteResume(r.Context(), userID, id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if !deleted {
		s.failure(w, r, &ErrResumeNotFound{ResumeID: id})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleExportResume renders the three profile exports from the stored data.
func (s *Server) handleExportResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ExportResponse{
		ResumeID:       resume.ID,
		ProfileExports: s.workflow.BuildExports(profileOf(resume)),
	})
}

// handleExportLaTeX renders the stored profile as a LaTeX CV.
func (s *Server) handleExportLaTeX(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}

	tex, err := s.workflow.RenderLaTeX(profileOf(resume))
	if err != nil {
		s.failure(w, r, err)
		return
	}

	name := strings.TrimSuffix(resume.FileName, filepath.Ext(resume.FileName))
	if name == "" {
		name = "resume"
	}
	w.Header().Set("Content-Type", "application/x-tex; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".tex"))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, tex)
}

// requireUser returns the authenticated user or writes a 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func (s *Server) resumeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return uuid.Nil, false
	}
	return id, true
}

// loadResume fetches the résumé named in the path for the calling user.
// Résumés of other users are reported as not found.
func (s *Server) loadResume(w http.ResponseWriter, r *http.Request) (*types.Resume, bool) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return nil, false
	}
	id, ok := s.resumeID(w, r)
	if !ok {
		return nil, false
	}

	resume, err := s.store.GetResume(r.Context(), userID, id)
	if err != nil {
		s.failure(w, r, err)
		return nil, false
	}
	if resume == nil {
		s.failure(w, r, &ErrResumeNotFound{ResumeID: id})
		return nil, false
	}
	return resume, true
}

func profileOf(r *types.Resume) *types.Profile {
	if r.ParsedData == nil {
		return types.NewProfile()
	}
	return r.ParsedData
}
