package hiring

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/types"
)

// ApplicationStore is the storage contract the hiring core depends on. A nil
// record with a nil error means "no rows"; errors mean the lookup itself
// failed and may be retried by the caller.
type ApplicationStore interface {
	GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error)
	GetPublicApplication(ctx context.Context, id uuid.UUID) (*types.Application, error)
	ListApplicationsForCandidate(ctx context.Context, candidateID uuid.UUID, email string) ([]types.Application, error)
	ListPublicApplicationsByEmail(ctx context.Context, email string) ([]types.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*types.Application, error)
	UpdatePublicApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*types.Application, error)
}

// Resolver locates applications across the two storage collections and
// normalizes them to a common shape.
type Resolver struct {
	store ApplicationStore
}

// NewResolver creates a resolver over the given store.
func NewResolver(store ApplicationStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve finds an application by ID. Lookup order is fixed: the
// authenticated collection first, the public collection only on a miss. A
// hit in the first collection must not trigger the second lookup, so the two
// can never produce an ambiguous merge.
func (r *Resolver) Resolve(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	app, err := r.store.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}
	if app != nil {
		app.Source = types.SourceAccount
		return app, nil
	}

	app, err = r.store.GetPublicApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up public application: %w", err)
	}
	if app != nil {
		app.Source = types.SourcePublic
		return app, nil
	}

	return nil, &ErrApplicationNotFound{ID: id}
}

// ListForSeeker returns the principal's applications merged across both
// collections: deduplicated by job (preferring the authenticated record),
// ordered by applied time descending, and filtered down to records that
// actually belong to the principal. The final filter is defense in depth on
// top of the query-level scope, not a substitute for it.
func (r *Resolver) ListForSeeker(ctx context.Context, principal types.Principal) ([]types.Application, error) {
	account, err := r.store.ListApplicationsForCandidate(ctx, principal.UserID, principal.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	public, err := r.store.ListPublicApplicationsByEmail(ctx, principal.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list public applications: %w", err)
	}

	merged := make([]types.Application, 0, len(account)+len(public))
	byJob := make(map[uuid.UUID]int)

	for i := range account {
		account[i].Source = types.SourceAccount
		byJob[account[i].JobID] = len(merged)
		merged = append(merged, account[i])
	}
	for i := range public {
		public[i].Source = types.SourcePublic
		// An authenticated record for the same job wins; the public
		// record is the same submission seen through the other table.
		if _, seen := byJob[public[i].JobID]; seen {
			continue
		}
		byJob[public[i].JobID] = len(merged)
		merged = append(merged, public[i])
	}

	filtered := merged[:0]
	for _, app := range merged {
		if belongsTo(app, principal) {
			filtered = append(filtered, app)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].AppliedAt.After(filtered[j].AppliedAt)
	})

	return filtered, nil
}

// belongsTo matches a record to the principal by candidate ID or by
// case-insensitive email equality.
func belongsTo(app types.Application, principal types.Principal) bool {
	if app.CandidateID != nil && *app.CandidateID == principal.UserID {
		return true
	}
	return app.Email != "" && strings.EqualFold(app.Email, principal.Email)
}
