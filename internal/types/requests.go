package types

import (
	"github.com/go-playground/validator/v10"
)

// UpdateStatusRequest is the body for a hiring-status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GenerateAssessmentRequest is the body for job-bound assessment generation.
// NumQuestions and DurationMinutes are optional; the generator clamps and
// defaults them.
type GenerateAssessmentRequest struct {
	NumQuestions    int `json:"num_questions,omitempty" validate:"omitempty,min=1,max=100"`
	DurationMinutes int `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	PassingScore    int `json:"passing_score,omitempty" validate:"omitempty,min=1,max=100"`
}

// ShareAssessmentRequest is the body for minting a shareable assessment link.
type ShareAssessmentRequest struct {
	Questions       []Question `json:"questions" validate:"required,min=1,dive"`
	JobTitle        string     `json:"job_title,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
}

// SubmitScoreRequest is the body for recording a completed assessment
// attempt. At least one of Token or JobID must be supplied; the handler
// enforces that since validator cannot express the disjunction cleanly.
type SubmitScoreRequest struct {
	Token          string  `json:"token,omitempty"`
	JobID          string  `json:"job_id,omitempty" validate:"omitempty,uuid"`
	Score          float64 `json:"score" validate:"min=0"`
	OverallScore   float64 `json:"overall_score" validate:"min=0"`
	CorrectCount   int     `json:"correct_count" validate:"min=0"`
	TotalQuestions int     `json:"total_questions" validate:"required,min=1"`
}

// Validate validates the UpdateStatusRequest using the validator.
func (r *UpdateStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateAssessmentRequest using the validator.
func (r *GenerateAssessmentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ShareAssessmentRequest using the validator.
func (r *ShareAssessmentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SubmitScoreRequest using the validator.
func (r *SubmitScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
