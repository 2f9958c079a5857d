// Package types provides shared type definitions used across the hiredesk system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationSource tags which storage collection an application record was
// resolved from. Candidates who apply with an account land in the
// applications table; candidates who apply through a public job page land in
// public_applications. The two tables carry divergent column names and must
// never be merged blindly.
type ApplicationSource string

const (
	// SourceAccount marks a record from the authenticated applications table.
	SourceAccount ApplicationSource = "applications"
	// SourcePublic marks a record from the public applications table.
	SourcePublic ApplicationSource = "public_applications"
)

// Application is the normalized view of a candidate's submission to a job,
// regardless of which collection it physically lives in.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"job_id"`
	CandidateID *uuid.UUID        `json:"candidate_id,omitempty"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone,omitempty"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	Status      string            `json:"status"`
	JobTitle    string            `json:"job_title,omitempty"`
	ResumeURL   string            `json:"resume_url,omitempty"`
	AssessmentToken    string     `json:"assessment_token,omitempty"`
	MatchScore         *float64   `json:"match_score,omitempty"`
	ResumeScore        *float64   `json:"resume_score,omitempty"`
	CommunicationScore *float64   `json:"communication_score,omitempty"`
	AppliedAt   time.Time         `json:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Source      ApplicationSource `json:"source"`
}

// Job is the subset of a job posting this core reads: join target for
// applications and the ownership fields used for authorization.
type Job struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Skills          []string  `json:"skills,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	OwnerID         uuid.UUID `json:"owner_id"`
	OwnerEmail      string    `json:"owner_email"`
	CreatedAt       time.Time `json:"created_at"`
}

// Question is a single multiple-choice question. Options always has exactly
// four entries and CorrectIndex is zero-based.
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Assessment is a persisted question set bound to a job. Created once per
// job; regeneration requires an explicit delete first.
type Assessment struct {
	ID              uuid.UUID  `json:"id"`
	JobID           uuid.UUID  `json:"job_id"`
	Questions       []Question `json:"questions"`
	DurationMinutes int        `json:"duration_minutes"`
	PassingScore    int        `json:"passing_score"`
	CreatedAt       time.Time  `json:"created_at"`
}

// SharedAssessment is an immutable snapshot of a question set addressable by
// an opaque capability token. It may carry no job at all.
type SharedAssessment struct {
	Token           string     `json:"token"`
	JobTitle        string     `json:"job_title,omitempty"`
	Questions       []Question `json:"questions"`
	DurationMinutes int        `json:"duration_minutes"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ScoreRecord is the persisted outcome of one completed assessment attempt.
// At most one record exists per resolved application (or per job when no
// application resolves); the check is best-effort, not a DB constraint.
type ScoreRecord struct {
	ID                 uuid.UUID  `json:"id"`
	ApplicationID      *uuid.UUID `json:"application_id,omitempty"`
	JobID              *uuid.UUID `json:"job_id,omitempty"`
	Token              string     `json:"token,omitempty"`
	Score              float64    `json:"score"`
	OverallScore       float64    `json:"overall_score"`
	ResumeScore        *float64   `json:"resume_score,omitempty"`
	CommunicationScore *float64   `json:"communication_score,omitempty"`
	CorrectCount       int        `json:"correct_count"`
	TotalQuestions     int        `json:"total_questions"`
	CreatedAt          time.Time  `json:"created_at"`
}
