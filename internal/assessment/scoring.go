package assessment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/types"
)

// ApplicationLookup resolves the application behind an assessment token and
// applies best-effort score updates to it. A nil application with a nil
// error means no record carries the token.
type ApplicationLookup interface {
	GetApplicationByToken(ctx context.Context, token string) (*types.Application, error)
	GetPublicApplicationByToken(ctx context.Context, token string) (*types.Application, error)
	UpdateApplicationScores(ctx context.Context, source types.ApplicationSource, id uuid.UUID, score, overallScore float64) error
}

// ScoreStore persists completed-attempt records. Stores must wrap failures
// caused by an absent table or column in ErrSchemaMismatch so the recorder
// can apply its one-shot reduced-payload retry.
type ScoreStore interface {
	FindScoreByApplication(ctx context.Context, applicationID uuid.UUID) (*types.ScoreRecord, error)
	FindScoreByJob(ctx context.Context, jobID uuid.UUID) (*types.ScoreRecord, error)
	InsertScore(ctx context.Context, rec *types.ScoreRecord) error
}

// AttemptResult reports what recording an attempt did. AlreadySaved means a
// prior record existed and no duplicate was inserted; the caller still
// treats that as success.
type AttemptResult struct {
	Record       *types.ScoreRecord `json:"record"`
	AlreadySaved bool               `json:"already_saved"`
}

// Recorder idempotently persists submitted assessment scores, reconciling
// the two application collections and the score table's schema drift.
type Recorder struct {
	scores ScoreStore
	apps   ApplicationLookup
}

// NewRecorder creates a score recorder.
func NewRecorder(scores ScoreStore, apps ApplicationLookup) *Recorder {
	return &Recorder{scores: scores, apps: apps}
}

// RecordAttempt persists one completed attempt. The primary effect is the
// inserted ScoreRecord; linking it to an application and copying scores onto
// that application are best-effort and never discard the score.
func (r *Recorder) RecordAttempt(ctx context.Context, req types.SubmitScoreRequest) (*AttemptResult, error) {
	if req.Token == "" && req.JobID == "" {
		return nil, ErrMissingReference
	}

	var jobID *uuid.UUID
	if req.JobID != "" {
		id, err := uuid.Parse(req.JobID)
		if err != nil {
			return nil, fmt.Errorf("invalid job id %q: %w", req.JobID, err)
		}
		jobID = &id
	}

	app := r.resolveApplication(ctx, req.Token)

	if app != nil {
		// Best-effort: the attempt is still recorded if this update fails.
		if err := r.apps.UpdateApplicationScores(ctx, app.Source, app.ID, req.Score, req.OverallScore); err != nil {
			log.Printf("[scores] failed to update application %s score fields: %v", app.ID, err)
		}
	}

	if existing := r.findExisting(ctx, app, jobID); existing != nil {
		return &AttemptResult{Record: existing, AlreadySaved: true}, nil
	}

	rec := &types.ScoreRecord{
		ID:             uuid.New(),
		JobID:          jobID,
		Token:          req.Token,
		Score:          req.Score,
		OverallScore:   req.OverallScore,
		CorrectCount:   req.CorrectCount,
		TotalQuestions: req.TotalQuestions,
		CreatedAt:      time.Now().UTC(),
	}
	if app != nil {
		rec.ApplicationID = &app.ID
		rec.ResumeScore = app.ResumeScore
		rec.CommunicationScore = app.CommunicationScore
	}

	if err := r.scores.InsertScore(ctx, rec); err != nil {
		// Deployments that never ran the job-column migration reject the
		// row; retry exactly once with the field stripped.
		if rec.JobID != nil && errors.Is(err, ErrSchemaMismatch) {
			log.Printf("[scores] score table lacks a job column, retrying without it")
			rec.JobID = nil
			err = r.scores.InsertScore(ctx, rec)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert score record: %w", err)
		}
	}

	return &AttemptResult{Record: rec}, nil
}

// resolveApplication finds the application carrying the token, trying the
// authenticated collection first. Lookup failures are logged and treated as
// "no linkage": the score must not be discarded merely because linkage
// failed.
func (r *Recorder) resolveApplication(ctx context.Context, token string) *types.Application {
	if token == "" {
		return nil
	}

	app, err := r.apps.GetApplicationByToken(ctx, token)
	if err != nil {
		log.Printf("[scores] token lookup in applications failed: %v", err)
	} else if app != nil {
		app.Source = types.SourceAccount
		return app
	}

	app, err = r.apps.GetPublicApplicationByToken(ctx, token)
	if err != nil {
		log.Printf("[scores] token lookup in public applications failed: %v", err)
		return nil
	}
	if app != nil {
		app.Source = types.SourcePublic
	}
	return app
}

// findExisting runs the best-effort idempotency pre-check: by application
// identity when one resolved, else by job identity when the schema supports
// it. Check failures are logged and treated as "no prior record".
func (r *Recorder) findExisting(ctx context.Context, app *types.Application, jobID *uuid.UUID) *types.ScoreRecord {
	if app != nil {
		existing, err := r.scores.FindScoreByApplication(ctx, app.ID)
		if err != nil {
			log.Printf("[scores] duplicate check by application failed: %v", err)
			return nil
		}
		return existing
	}

	if jobID != nil {
		existing, err := r.scores.FindScoreByJob(ctx, *jobID)
		if err != nil {
			if errors.Is(err, ErrSchemaMismatch) {
				// No job column in this deployment, nothing to check against.
				return nil
			}
			log.Printf("[scores] duplicate check by job failed: %v", err)
			return nil
		}
		return existing
	}

	return nil
}
