package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/hiring"
	"github.com/hiredesk/hiredesk/internal/server/middleware"
	"github.com/hiredesk/hiredesk/internal/types"
)

// handleUpdateStatus handles PUT /api/applications/{id}/status.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		s.jsonResponse(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	appID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Message: "invalid application id"})
		return
	}

	var req types.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Message: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		// Same shape as an illegal value: the client learns the legal set.
		s.errorResponse(w, &ErrValidation{
			Message: fmt.Sprintf("status is required: must be one of %s", strings.Join(hiring.StatusValues(), ", ")),
		})
		return
	}

	app, err := s.engine.Transition(r.Context(), principal, appID, req.Status)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":     "application status updated",
		"application": app,
	})
}
