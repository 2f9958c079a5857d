// Package assessment implements MCQ assessment generation, shareable
// token-addressed distribution, and idempotent score recording.
package assessment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/llm"
	"github.com/hiredesk/hiredesk/internal/types"
)

// Question-count bounds. Caller-supplied counts are clamped, never rejected,
// to keep generation requests from abusing the upstream service.
const (
	minQuestionCount = 1
	maxQuestionCount = 100

	defaultJobQuestionCount   = 20
	defaultAdHocQuestionCount = 30
)

// AssessmentStore persists job-bound assessments. A nil assessment with a
// nil error means no assessment exists for the job.
type AssessmentStore interface {
	GetAssessmentByJob(ctx context.Context, jobID uuid.UUID) (*types.Assessment, error)
	CreateAssessment(ctx context.Context, a *types.Assessment) error
	DeleteAssessmentByJob(ctx context.Context, jobID uuid.UUID) (bool, error)
}

// Generator produces validated multiple-choice question sets from job
// context via the text-generation collaborator.
type Generator struct {
	client          llm.Client
	store           AssessmentStore
	defaultDuration int
	defaultPassing  int
}

// NewGenerator creates a generator. defaultDuration (minutes) and
// defaultPassing (percent) fill request fields the caller leaves zero.
func NewGenerator(client llm.Client, store AssessmentStore, defaultDuration, defaultPassing int) *Generator {
	return &Generator{
		client:          client,
		store:           store,
		defaultDuration: defaultDuration,
		defaultPassing:  defaultPassing,
	}
}

// GenerateForJob generates and persists the assessment for a job. A job may
// have at most one: an existing assessment fails with ErrAssessmentExists
// and must be deleted explicitly first, so a test candidates may already be
// mid-attempt on is never overwritten by accident.
func (g *Generator) GenerateForJob(ctx context.Context, job *types.Job, req types.GenerateAssessmentRequest) (*types.Assessment, error) {
	existing, err := g.store.GetAssessmentByJob(ctx, job.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing assessment: %w", err)
	}
	if existing != nil {
		return nil, &ErrAssessmentExists{JobID: job.ID}
	}

	count := clampCount(req.NumQuestions, defaultJobQuestionCount)
	questions, err := g.Generate(ctx, job.Title, job.Skills, job.ExperienceYears, count)
	if err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = g.defaultDuration
	}
	passing := req.PassingScore
	if passing <= 0 {
		passing = g.defaultPassing
	}

	a := &types.Assessment{
		ID:              uuid.New(),
		JobID:           job.ID,
		Questions:       questions,
		DurationMinutes: duration,
		PassingScore:    passing,
		CreatedAt:       time.Now().UTC(),
	}
	if err := g.store.CreateAssessment(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to persist assessment: %w", err)
	}
	return a, nil
}

// Generate requests a question set from the generation service and validates
// it. Nothing is persisted; a structurally invalid set is discarded whole.
func (g *Generator) Generate(ctx context.Context, title string, skills []string, experienceYears, count int) ([]types.Question, error) {
	count = clampCount(count, defaultAdHocQuestionCount)

	raw, err := g.client.GenerateJSON(ctx, buildQuestionPrompt(title, skills, experienceYears, count))
	if err != nil {
		return nil, err
	}

	return parseQuestionSet(raw)
}

// GetForJob returns the persisted assessment for a job.
func (g *Generator) GetForJob(ctx context.Context, jobID uuid.UUID) (*types.Assessment, error) {
	a, err := g.store.GetAssessmentByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if a == nil {
		return nil, &ErrAssessmentNotFound{JobID: jobID}
	}
	return a, nil
}

// DeleteForJob removes the persisted assessment, unblocking regeneration.
func (g *Generator) DeleteForJob(ctx context.Context, jobID uuid.UUID) error {
	deleted, err := g.store.DeleteAssessmentByJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	if !deleted {
		return &ErrAssessmentNotFound{JobID: jobID}
	}
	return nil
}

func clampCount(n, fallback int) int {
	if n == 0 {
		n = fallback
	}
	if n < minQuestionCount {
		return minQuestionCount
	}
	if n > maxQuestionCount {
		return maxQuestionCount
	}
	return n
}

// buildQuestionPrompt constructs the generation prompt from job context.
func buildQuestionPrompt(title string, skills []string, experienceYears, count int) string {
	var sb strings.Builder

	sb.WriteString("You are preparing a screening test for a job candidate.\n\n")
	if title != "" {
		fmt.Fprintf(&sb, "Role: %s\n", title)
	}
	if len(skills) > 0 {
		fmt.Fprintf(&sb, "Required skills: %s\n", strings.Join(skills, ", "))
	}
	if experienceYears > 0 {
		fmt.Fprintf(&sb, "Expected experience: %d+ years\n", experienceYears)
	}

	fmt.Fprintf(&sb, "\nGenerate exactly %d multiple-choice questions appropriate for this role.\n\n", count)
	sb.WriteString("Return ONLY a valid JSON array matching this exact structure:\n")
	sb.WriteString(`[
  {
    "question": "string, the question text",
    "options": ["string", "string", "string", "string"],
    "correct_index": 0
  }
]
`)
	sb.WriteString("\nRules:\n")
	sb.WriteString("- every question has exactly 4 options\n")
	sb.WriteString("- correct_index is the zero-based index of the right option\n")
	sb.WriteString("- no markdown, no commentary, JSON only\n")

	return sb.String()
}
