package assessment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEmptyQuestions indicates a share-link request with no questions.
var ErrEmptyQuestions = errors.New("questions array must not be empty")

// ErrMissingReference indicates a score submission with neither a token nor
// a job identifier.
var ErrMissingReference = errors.New("either a token or a job id is required")

// ErrSchemaMismatch marks store failures caused by an absent table or
// column. The scoring recorder retries once with the offending field
// stripped; anywhere else it surfaces with a remediation hint.
var ErrSchemaMismatch = errors.New("storage schema is out of date")

// ErrMalformedGeneration indicates the generation service returned a
// structurally invalid question set. Nothing is persisted.
type ErrMalformedGeneration struct {
	Reason string
}

func (e *ErrMalformedGeneration) Error() string {
	return fmt.Sprintf("generated question set is invalid: %s", e.Reason)
}

// ErrAssessmentExists indicates a job already has a persisted assessment.
// Candidates may be mid-attempt on it, so it must be deleted explicitly
// before regeneration.
type ErrAssessmentExists struct {
	JobID uuid.UUID
}

func (e *ErrAssessmentExists) Error() string {
	return fmt.Sprintf("an assessment already exists for job %s: delete it before regenerating", e.JobID)
}

// ErrAssessmentNotFound indicates no assessment exists for the job.
type ErrAssessmentNotFound struct {
	JobID uuid.UUID
}

func (e *ErrAssessmentNotFound) Error() string {
	return fmt.Sprintf("no assessment found for job %s", e.JobID)
}

// ErrTokenNotFound indicates an unknown share token.
type ErrTokenNotFound struct {
	Token string
}

func (e *ErrTokenNotFound) Error() string {
	return "no shared assessment found for the supplied token"
}
