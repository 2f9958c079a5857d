// Package hiring implements the hiring-pipeline core: application
// resolution across the two storage collections, ownership authorization,
// the status state machine, and status-change notifications.
package hiring

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/types"
)

// Status is a hiring-stage label an application can carry. The set is fixed;
// any member may follow any other member. There is no predecessor graph:
// legality is set membership only.
type Status string

// The full status lifecycle.
const (
	StatusApplied            Status = "applied"
	StatusSubmitted          Status = "submitted"
	StatusUnderReview        Status = "under_review"
	StatusShortlisted        Status = "shortlisted"
	StatusRejected           Status = "rejected"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusInterviewing       Status = "interviewing"
	StatusOffered            Status = "offered"
	StatusHired              Status = "hired"
	StatusAccepted           Status = "accepted"
)

var allStatuses = []Status{
	StatusApplied,
	StatusSubmitted,
	StatusUnderReview,
	StatusShortlisted,
	StatusRejected,
	StatusInterviewScheduled,
	StatusInterviewing,
	StatusOffered,
	StatusHired,
	StatusAccepted,
}

// StatusValues returns the legal status strings in declaration order.
func StatusValues() []string {
	values := make([]string, len(allStatuses))
	for i, s := range allStatuses {
		values[i] = string(s)
	}
	return values
}

// IsValidStatus reports whether s is a member of the enumerated set.
func IsValidStatus(s string) bool {
	for _, status := range allStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// JobStore resolves the owning job for authorization. A nil job with a nil
// error means no such job exists.
type JobStore interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
}

// Notifier is told about successful status changes. Failures are absorbed by
// the engine; implementations must not assume their errors stop anything.
type Notifier interface {
	StatusChanged(ctx context.Context, app *types.Application) error
}

// Engine validates and applies status transitions. Persistence and
// notification are intentionally not atomic: a status change whose
// notification fails is still a successful status change.
type Engine struct {
	store    ApplicationStore
	jobs     JobStore
	notifier Notifier
}

// NewEngine creates a transition engine.
func NewEngine(store ApplicationStore, jobs JobStore, notifier Notifier) *Engine {
	return &Engine{store: store, jobs: jobs, notifier: notifier}
}

// Transition moves an application to the requested status on behalf of the
// principal. The updated, normalized record is returned on success.
func (e *Engine) Transition(ctx context.Context, principal types.Principal, appID uuid.UUID, status string) (*types.Application, error) {
	resolver := NewResolver(e.store)
	app, err := resolver.Resolve(ctx, appID)
	if err != nil {
		return nil, err
	}

	if !IsValidStatus(status) {
		return nil, &ErrInvalidStatus{Status: status}
	}

	job, err := e.jobs.GetJob(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve job for authorization: %w", err)
	}
	if job == nil {
		return nil, &ErrJobNotFound{ID: app.JobID}
	}
	if !CanManage(principal, job) {
		return nil, &ErrForbidden{Email: principal.Email, JobID: job.ID}
	}

	// The update path is collection-specific: the authenticated table
	// re-attaches job title and candidate name for response shaping, the
	// public table only re-attaches job title.
	var updated *types.Application
	switch app.Source {
	case types.SourceAccount:
		updated, err = e.store.UpdateApplicationStatus(ctx, app.ID, status)
	case types.SourcePublic:
		updated, err = e.store.UpdatePublicApplicationStatus(ctx, app.ID, status)
	default:
		return nil, fmt.Errorf("unknown application source %q", app.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	// Best-effort: notification failure never rolls back the transition.
	if e.notifier != nil {
		if err := e.notifier.StatusChanged(ctx, updated); err != nil {
			log.Printf("[notify] status change notification failed for application %s: %v", updated.ID, err)
		}
	}

	return updated, nil
}
