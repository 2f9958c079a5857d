package hiring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiredesk/hiredesk/internal/types"
)

func TestResolve_AuthenticatedCollectionFirst(t *testing.T) {
	store := newFakeStore()
	id := uuid.New()
	store.apps[id] = &types.Application{ID: id, Status: "applied"}
	// The same ID also present in the public table must never be consulted.
	store.publicApps[id] = &types.Application{ID: id, Status: "submitted"}

	app, err := NewResolver(store).Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, types.SourceAccount, app.Source)
	assert.Equal(t, "applied", app.Status)
	assert.False(t, store.publicQueried, "public collection must not be queried after a hit")
}

func TestResolve_FallsBackToPublicCollection(t *testing.T) {
	store := newFakeStore()
	id := uuid.New()
	store.publicApps[id] = &types.Application{ID: id, Status: "applied"}

	app, err := NewResolver(store).Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, types.SourcePublic, app.Source)
}

func TestResolve_NotFoundInEitherCollection(t *testing.T) {
	store := newFakeStore()
	id := uuid.New()

	_, err := NewResolver(store).Resolve(context.Background(), id)
	var notFound *ErrApplicationNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, id, notFound.ID)
}

func TestResolve_LookupFailureIsNotNotFound(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")

	_, err := NewResolver(store).Resolve(context.Background(), uuid.New())
	require.Error(t, err)
	var notFound *ErrApplicationNotFound
	assert.False(t, errors.As(err, &notFound), "I/O failures must stay distinguishable from not-found")
}

func TestListForSeeker_MergePrefersAuthenticatedRecord(t *testing.T) {
	store := newFakeStore()
	seekerID := uuid.New()
	jobID := uuid.New()
	now := time.Now()

	store.accountList = []types.Application{
		{ID: uuid.New(), JobID: jobID, CandidateID: &seekerID, Email: "seeker@example.com", AppliedAt: now},
	}
	store.publicList = []types.Application{
		{ID: uuid.New(), JobID: jobID, Email: "seeker@example.com", AppliedAt: now.Add(-time.Hour)},
	}

	principal := types.Principal{UserID: seekerID, Email: "seeker@example.com", Role: types.RoleSeeker}
	apps, err := NewResolver(store).ListForSeeker(context.Background(), principal)
	require.NoError(t, err)

	require.Len(t, apps, 1, "one authenticated and one public record for the same job must merge to one entry")
	assert.Equal(t, types.SourceAccount, apps[0].Source)
}

func TestListForSeeker_OrderedByAppliedAtDescending(t *testing.T) {
	store := newFakeStore()
	seekerID := uuid.New()
	now := time.Now()

	store.accountList = []types.Application{
		{ID: uuid.New(), JobID: uuid.New(), CandidateID: &seekerID, AppliedAt: now.Add(-48 * time.Hour)},
	}
	store.publicList = []types.Application{
		{ID: uuid.New(), JobID: uuid.New(), Email: "seeker@example.com", AppliedAt: now},
		{ID: uuid.New(), JobID: uuid.New(), Email: "SEEKER@example.com", AppliedAt: now.Add(-24 * time.Hour)},
	}

	principal := types.Principal{UserID: seekerID, Email: "seeker@example.com", Role: types.RoleSeeker}
	apps, err := NewResolver(store).ListForSeeker(context.Background(), principal)
	require.NoError(t, err)

	require.Len(t, apps, 3)
	for i := 1; i < len(apps); i++ {
		assert.False(t, apps[i].AppliedAt.After(apps[i-1].AppliedAt), "listing must be newest first")
	}
}

func TestListForSeeker_FiltersForeignRecords(t *testing.T) {
	store := newFakeStore()
	seekerID := uuid.New()
	otherID := uuid.New()

	store.accountList = []types.Application{
		{ID: uuid.New(), JobID: uuid.New(), CandidateID: &seekerID, Email: "seeker@example.com"},
		// A record that leaked past the query-level scope.
		{ID: uuid.New(), JobID: uuid.New(), CandidateID: &otherID, Email: "other@example.com"},
	}

	principal := types.Principal{UserID: seekerID, Email: "seeker@example.com", Role: types.RoleSeeker}
	apps, err := NewResolver(store).ListForSeeker(context.Background(), principal)
	require.NoError(t, err)

	require.Len(t, apps, 1)
	assert.Equal(t, seekerID, *apps[0].CandidateID)
}
