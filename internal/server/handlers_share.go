package server

import (
	"encoding/json"
	"net/http"

	"github.com/hiredesk/hiredesk/internal/types"
)

// handleCreateShareLink handles POST /api/assessments/share. Mints an
// opaque token for a caller-supplied question set so it can be sent to
// candidates without a job posting behind it.
func (s *Server) handleCreateShareLink(w http.ResponseWriter, r *http.Request) {
	var req types.ShareAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Message: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Message: err.Error()})
		return
	}

	link, err := s.registry.Create(r.Context(), req.Questions, req.JobTitle, req.DurationMinutes)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"token": link.Token,
		"url":   link.URL,
	})
}

// handleResolveShareLink handles GET /api/assessments/shared/{token}.
// Unauthenticated; the token is the capability.
func (s *Server) handleResolveShareLink(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		s.errorResponse(w, &ErrValidation{Message: "token is required"})
		return
	}

	shared, err := s.registry.Resolve(r.Context(), token)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, shared)
}
