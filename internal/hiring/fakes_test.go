package hiring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/types"
)

// fakeStore is an in-memory ApplicationStore and JobStore for engine tests.
type fakeStore struct {
	apps       map[uuid.UUID]*types.Application // authenticated collection
	publicApps map[uuid.UUID]*types.Application // public collection
	jobs       map[uuid.UUID]*types.Job

	accountList []types.Application
	publicList  []types.Application

	getErr        error
	updateErr     error
	publicQueried bool
	statusUpdates []string // records "source:id:status" per mutation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		apps:       make(map[uuid.UUID]*types.Application),
		publicApps: make(map[uuid.UUID]*types.Application),
		jobs:       make(map[uuid.UUID]*types.Job),
	}
}

func (f *fakeStore) GetApplication(_ context.Context, id uuid.UUID) (*types.Application, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if app, ok := f.apps[id]; ok {
		clone := *app
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeStore) GetPublicApplication(_ context.Context, id uuid.UUID) (*types.Application, error) {
	f.publicQueried = true
	if f.getErr != nil {
		return nil, f.getErr
	}
	if app, ok := f.publicApps[id]; ok {
		clone := *app
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeStore) ListApplicationsForCandidate(context.Context, uuid.UUID, string) ([]types.Application, error) {
	return f.accountList, nil
}

func (f *fakeStore) ListPublicApplicationsByEmail(context.Context, string) ([]types.Application, error) {
	return f.publicList, nil
}

func (f *fakeStore) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status string) (*types.Application, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	app, ok := f.apps[id]
	if !ok {
		return nil, fmt.Errorf("no such application: %s", id)
	}
	app.Status = status
	f.statusUpdates = append(f.statusUpdates, fmt.Sprintf("account:%s:%s", id, status))
	clone := *app
	clone.Source = types.SourceAccount
	return &clone, nil
}

func (f *fakeStore) UpdatePublicApplicationStatus(_ context.Context, id uuid.UUID, status string) (*types.Application, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	app, ok := f.publicApps[id]
	if !ok {
		return nil, fmt.Errorf("no such public application: %s", id)
	}
	app.Status = status
	f.statusUpdates = append(f.statusUpdates, fmt.Sprintf("public:%s:%s", id, status))
	clone := *app
	clone.Source = types.SourcePublic
	return &clone, nil
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	if job, ok := f.jobs[id]; ok {
		return job, nil
	}
	return nil, nil
}

// fakeNotifier records status-change notifications and can be made to fail.
type fakeNotifier struct {
	notified []*types.Application
	err      error
}

func (f *fakeNotifier) StatusChanged(_ context.Context, app *types.Application) error {
	f.notified = append(f.notified, app)
	return f.err
}

// fakeSender records outbound emails for dispatcher tests.
type fakeSender struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
