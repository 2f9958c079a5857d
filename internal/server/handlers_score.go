package server

import (
	"encoding/json"
	"net/http"

	"github.com/hiredesk/hiredesk/internal/types"
)

// handleSubmitScore handles POST /api/assessments/score. Unauthenticated;
// candidates finish assessments from emailed links without a session.
func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req types.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Message: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Message: err.Error()})
		return
	}

	result, err := s.recorder.RecordAttempt(r.Context(), req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	message := "score recorded"
	if result.AlreadySaved {
		message = "score already recorded"
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":       message,
		"already_saved": result.AlreadySaved,
		"record":        result.Record,
	})
}
