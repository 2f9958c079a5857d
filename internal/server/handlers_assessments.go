package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/hiring"
	"github.com/hiredesk/hiredesk/internal/server/middleware"
	"github.com/hiredesk/hiredesk/internal/types"
)

// jobForManagement resolves the {id} path value to a job the caller is
// allowed to manage. Writes the error response itself and returns nil when
// the request should not proceed.
func (s *Server) jobForManagement(w http.ResponseWriter, r *http.Request) *types.Job {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		s.jsonResponse(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return nil
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Message: "invalid job id"})
		return nil
	}

	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, err)
		return nil
	}
	if job == nil {
		s.errorResponse(w, &hiring.ErrJobNotFound{ID: jobID})
		return nil
	}
	if !hiring.CanManage(principal, job) {
		s.errorResponse(w, &hiring.ErrForbidden{Email: principal.Email, JobID: jobID})
		return nil
	}

	return job
}

// handleGenerateAssessment handles POST /api/jobs/{id}/assessment.
func (s *Server) handleGenerateAssessment(w http.ResponseWriter, r *http.Request) {
	job := s.jobForManagement(w, r)
	if job == nil {
		return
	}

	// The body is optional; an absent body means all defaults.
	var req types.GenerateAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, &ErrValidation{Message: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Message: err.Error()})
		return
	}

	asmt, err := s.generator.GenerateForJob(r.Context(), job, req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":          "assessment generated",
		"id":               asmt.ID,
		"job_id":           asmt.JobID,
		"question_count":   len(asmt.Questions),
		"duration_minutes": asmt.DurationMinutes,
		"passing_score":    asmt.PassingScore,
	})
}

// handleGetAssessment handles GET /api/jobs/{id}/assessment.
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	job := s.jobForManagement(w, r)
	if job == nil {
		return
	}

	asmt, err := s.generator.GetForJob(r.Context(), job.ID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, asmt)
}

// handleDeleteAssessment handles DELETE /api/jobs/{id}/assessment.
func (s *Server) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	job := s.jobForManagement(w, r)
	if job == nil {
		return
	}

	if err := s.generator.DeleteForJob(r.Context(), job.ID); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "assessment deleted"})
}
