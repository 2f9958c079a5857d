package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hiredesk/hiredesk/internal/types"
)

// fakeLLM returns a canned response and records the prompt it was given.
type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Close() error { return nil }

// fakeAssessmentStore is an in-memory AssessmentStore.
type fakeAssessmentStore struct {
	byJob map[uuid.UUID]*types.Assessment
}

func newFakeAssessmentStore() *fakeAssessmentStore {
	return &fakeAssessmentStore{byJob: make(map[uuid.UUID]*types.Assessment)}
}

func (f *fakeAssessmentStore) GetAssessmentByJob(_ context.Context, jobID uuid.UUID) (*types.Assessment, error) {
	if a, ok := f.byJob[jobID]; ok {
		return a, nil
	}
	return nil, nil
}

func (f *fakeAssessmentStore) CreateAssessment(_ context.Context, a *types.Assessment) error {
	f.byJob[a.JobID] = a
	return nil
}

func (f *fakeAssessmentStore) DeleteAssessmentByJob(_ context.Context, jobID uuid.UUID) (bool, error) {
	if _, ok := f.byJob[jobID]; !ok {
		return false, nil
	}
	delete(f.byJob, jobID)
	return true, nil
}

// fakeShareStore is an in-memory ShareStore.
type fakeShareStore struct {
	byToken   map[string]*types.SharedAssessment
	createErr error
}

func newFakeShareStore() *fakeShareStore {
	return &fakeShareStore{byToken: make(map[string]*types.SharedAssessment)}
}

func (f *fakeShareStore) CreateSharedAssessment(_ context.Context, s *types.SharedAssessment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byToken[s.Token] = s
	return nil
}

func (f *fakeShareStore) GetSharedAssessment(_ context.Context, token string) (*types.SharedAssessment, error) {
	if s, ok := f.byToken[token]; ok {
		return s, nil
	}
	return nil, nil
}

// fakeScoreStore is an in-memory ScoreStore that can simulate the missing
// job-column schema.
type fakeScoreStore struct {
	records          []*types.ScoreRecord
	jobColumnMissing bool
	insertErr        error
}

func (f *fakeScoreStore) FindScoreByApplication(_ context.Context, appID uuid.UUID) (*types.ScoreRecord, error) {
	for _, rec := range f.records {
		if rec.ApplicationID != nil && *rec.ApplicationID == appID {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeScoreStore) FindScoreByJob(_ context.Context, jobID uuid.UUID) (*types.ScoreRecord, error) {
	if f.jobColumnMissing {
		return nil, fmt.Errorf("column \"job_id\" does not exist: %w", ErrSchemaMismatch)
	}
	for _, rec := range f.records {
		if rec.JobID != nil && *rec.JobID == jobID {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeScoreStore) InsertScore(_ context.Context, rec *types.ScoreRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.jobColumnMissing && rec.JobID != nil {
		return fmt.Errorf("column \"job_id\" does not exist: %w", ErrSchemaMismatch)
	}
	clone := *rec
	f.records = append(f.records, &clone)
	return nil
}

// fakeAppLookup is an in-memory ApplicationLookup.
type fakeAppLookup struct {
	accountByToken map[string]*types.Application
	publicByToken  map[string]*types.Application
	scoreUpdates   []string
	updateErr      error
	lookupErr      error
}

func newFakeAppLookup() *fakeAppLookup {
	return &fakeAppLookup{
		accountByToken: make(map[string]*types.Application),
		publicByToken:  make(map[string]*types.Application),
	}
}

func (f *fakeAppLookup) GetApplicationByToken(_ context.Context, token string) (*types.Application, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if app, ok := f.accountByToken[token]; ok {
		clone := *app
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeAppLookup) GetPublicApplicationByToken(_ context.Context, token string) (*types.Application, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if app, ok := f.publicByToken[token]; ok {
		clone := *app
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeAppLookup) UpdateApplicationScores(_ context.Context, source types.ApplicationSource, id uuid.UUID, score, overall float64) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.scoreUpdates = append(f.scoreUpdates, fmt.Sprintf("%s:%s:%.1f:%.1f", source, id, score, overall))
	return nil
}

// validQuestionSet builds n well-formed questions and their JSON encoding.
func validQuestionSet(t *testing.T, n int) ([]types.Question, string) {
	t.Helper()
	questions := make([]types.Question, n)
	for i := range questions {
		questions[i] = types.Question{
			Text:         fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
		}
	}
	raw, err := json.Marshal(questions)
	require.NoError(t, err)
	return questions, string(raw)
}
