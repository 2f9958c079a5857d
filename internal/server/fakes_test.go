package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hiredesk/hiredesk/internal/assessment"
	"github.com/hiredesk/hiredesk/internal/config"
	"github.com/hiredesk/hiredesk/internal/hiring"
	"github.com/hiredesk/hiredesk/internal/types"
)

// fakeStore backs the hiring engine and resolver in handler tests.
type fakeStore struct {
	apps          map[uuid.UUID]*types.Application
	public        map[uuid.UUID]*types.Application
	jobs          map[uuid.UUID]*types.Job
	statusUpdates []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		apps:   make(map[uuid.UUID]*types.Application),
		public: make(map[uuid.UUID]*types.Application),
		jobs:   make(map[uuid.UUID]*types.Job),
	}
}

func (f *fakeStore) GetApplication(_ context.Context, id uuid.UUID) (*types.Application, error) {
	return f.apps[id], nil
}

func (f *fakeStore) GetPublicApplication(_ context.Context, id uuid.UUID) (*types.Application, error) {
	return f.public[id], nil
}

func (f *fakeStore) ListApplicationsForCandidate(_ context.Context, candidateID uuid.UUID, email string) ([]types.Application, error) {
	var out []types.Application
	for _, app := range f.apps {
		if (app.CandidateID != nil && *app.CandidateID == candidateID) || strings.EqualFold(app.Email, email) {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPublicApplicationsByEmail(_ context.Context, email string) ([]types.Application, error) {
	var out []types.Application
	for _, app := range f.public {
		if strings.EqualFold(app.Email, email) {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status string) (*types.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, nil
	}
	app.Status = status
	f.statusUpdates = append(f.statusUpdates, fmt.Sprintf("%s:%s:%s", types.SourceAccount, id, status))
	return app, nil
}

func (f *fakeStore) UpdatePublicApplicationStatus(_ context.Context, id uuid.UUID, status string) (*types.Application, error) {
	app, ok := f.public[id]
	if !ok {
		return nil, nil
	}
	app.Status = status
	f.statusUpdates = append(f.statusUpdates, fmt.Sprintf("%s:%s:%s", types.SourcePublic, id, status))
	return app, nil
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	return f.jobs[id], nil
}

type fakeNotifier struct {
	notified []uuid.UUID
}

func (f *fakeNotifier) StatusChanged(_ context.Context, app *types.Application) error {
	f.notified = append(f.notified, app.ID)
	return nil
}

// fakeLLM returns a canned payload for every prompt.
type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Close() error { return nil }

type fakeAssessmentStore struct {
	byJob map[uuid.UUID]*types.Assessment
}

func newFakeAssessmentStore() *fakeAssessmentStore {
	return &fakeAssessmentStore{byJob: make(map[uuid.UUID]*types.Assessment)}
}

func (f *fakeAssessmentStore) GetAssessmentByJob(_ context.Context, jobID uuid.UUID) (*types.Assessment, error) {
	return f.byJob[jobID], nil
}

func (f *fakeAssessmentStore) CreateAssessment(_ context.Context, a *types.Assessment) error {
	f.byJob[a.JobID] = a
	return nil
}

func (f *fakeAssessmentStore) DeleteAssessmentByJob(_ context.Context, jobID uuid.UUID) (bool, error) {
	_, ok := f.byJob[jobID]
	delete(f.byJob, jobID)
	return ok, nil
}

type fakeShareStore struct {
	byToken map[string]*types.SharedAssessment
}

func newFakeShareStore() *fakeShareStore {
	return &fakeShareStore{byToken: make(map[string]*types.SharedAssessment)}
}

func (f *fakeShareStore) CreateSharedAssessment(_ context.Context, s *types.SharedAssessment) error {
	f.byToken[s.Token] = s
	return nil
}

func (f *fakeShareStore) GetSharedAssessment(_ context.Context, token string) (*types.SharedAssessment, error) {
	return f.byToken[token], nil
}

type fakeScoreStore struct {
	records []*types.ScoreRecord
}

func (f *fakeScoreStore) FindScoreByApplication(_ context.Context, applicationID uuid.UUID) (*types.ScoreRecord, error) {
	for _, rec := range f.records {
		if rec.ApplicationID != nil && *rec.ApplicationID == applicationID {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeScoreStore) FindScoreByJob(_ context.Context, jobID uuid.UUID) (*types.ScoreRecord, error) {
	for _, rec := range f.records {
		if rec.JobID != nil && *rec.JobID == jobID {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeScoreStore) InsertScore(_ context.Context, rec *types.ScoreRecord) error {
	f.records = append(f.records, rec)
	return nil
}

type fakeAppLookup struct {
	byToken map[string]*types.Application
}

func newFakeAppLookup() *fakeAppLookup {
	return &fakeAppLookup{byToken: make(map[string]*types.Application)}
}

func (f *fakeAppLookup) GetApplicationByToken(_ context.Context, token string) (*types.Application, error) {
	app := f.byToken[token]
	if app != nil && app.Source == types.SourceAccount {
		return app, nil
	}
	return nil, nil
}

func (f *fakeAppLookup) GetPublicApplicationByToken(_ context.Context, token string) (*types.Application, error) {
	app := f.byToken[token]
	if app != nil && app.Source == types.SourcePublic {
		return app, nil
	}
	return nil, nil
}

func (f *fakeAppLookup) UpdateApplicationScores(_ context.Context, _ types.ApplicationSource, _ uuid.UUID, _, _ float64) error {
	return nil
}

// fixtures bundles the fakes wired into a test server.
type fixtures struct {
	store       *fakeStore
	notifier    *fakeNotifier
	llm         *fakeLLM
	assessments *fakeAssessmentStore
	shares      *fakeShareStore
	scores      *fakeScoreStore
	lookup      *fakeAppLookup
}

func newTestServer(t *testing.T) (*Server, *fixtures) {
	t.Helper()

	f := &fixtures{
		store:       newFakeStore(),
		notifier:    &fakeNotifier{},
		llm:         &fakeLLM{response: validQuestionJSON(t)},
		assessments: newFakeAssessmentStore(),
		shares:      newFakeShareStore(),
		scores:      &fakeScoreStore{},
		lookup:      newFakeAppLookup(),
	}

	cfg := &config.Config{
		AppEnv:             "development",
		BaseURL:            "http://hiredesk.test",
		AssessmentDuration: 30,
		PassingScore:       60,
	}
	jwtService := NewJWTService(&config.JWTConfig{
		Secret:          strings.Repeat("s", 32),
		ExpirationHours: 1,
	})

	s := &Server{
		cfg:        cfg,
		jwtService: jwtService,
		jobs:       f.store,
		engine:     hiring.NewEngine(f.store, f.store, f.notifier),
		resolver:   hiring.NewResolver(f.store),
		generator:  assessment.NewGenerator(f.llm, f.assessments, cfg.AssessmentDuration, cfg.PassingScore),
		registry:   assessment.NewRegistry(f.shares, cfg.BaseURL, cfg.AssessmentDuration),
		recorder:   assessment.NewRecorder(f.scores, f.lookup),
		llmClient:  f.llm,
	}
	return s, f
}

func validQuestions() []types.Question {
	questions := make([]types.Question, 5)
	for i := range questions {
		questions[i] = types.Question{
			Text:         fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
		}
	}
	return questions
}

func validQuestionJSON(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(validQuestions())
	require.NoError(t, err)
	return string(raw)
}

func bearerToken(t *testing.T, s *Server, principal types.Principal) string {
	t.Helper()
	token, err := s.jwtService.GenerateToken(principal)
	require.NoError(t, err)
	return "Bearer " + token
}
