package server

import (
	"net/http"

	"github.com/hiredesk/hiredesk/internal/server/middleware"
)

// handleListMyApplications handles GET /api/my/applications. Returns the
// merged account and public submissions belonging to the caller, newest
// first.
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		s.jsonResponse(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	apps, err := s.resolver.ListForSeeker(r.Context(), principal)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": apps,
		"count":        len(apps),
	})
}
