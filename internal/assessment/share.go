package assessment

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/hiredesk/hiredesk/internal/types"
)

// shareTokenBytes sizes the capability token. 24 bytes is 192 bits of
// entropy, comfortably past the unguessability floor.
const shareTokenBytes = 24

// ShareStore persists immutable shared-assessment snapshots keyed by token.
// A nil snapshot with a nil error means the token is unknown.
type ShareStore interface {
	CreateSharedAssessment(ctx context.Context, s *types.SharedAssessment) error
	GetSharedAssessment(ctx context.Context, token string) (*types.SharedAssessment, error)
}

// ShareLink is the minted capability handed back to the caller.
type ShareLink struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// Registry mints and resolves shareable assessment links. The token is the
// whole capability: resolution requires no authentication, and no expiry or
// revocation exists.
type Registry struct {
	store           ShareStore
	baseURL         string
	defaultDuration int
}

// NewRegistry creates a registry. baseURL is the public origin embedded in
// minted URLs.
func NewRegistry(store ShareStore, baseURL string, defaultDuration int) *Registry {
	return &Registry{
		store:           store,
		baseURL:         strings.TrimRight(baseURL, "/"),
		defaultDuration: defaultDuration,
	}
}

// Create validates the question set, mints a token, and persists the
// snapshot. The snapshot denormalizes questions and duration so later edits
// to any source material cannot change what the link serves.
func (r *Registry) Create(ctx context.Context, questions []types.Question, jobTitle string, durationMinutes int) (*ShareLink, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestions
	}
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		durationMinutes = r.defaultDuration
	}

	token, err := newShareToken()
	if err != nil {
		return nil, err
	}

	snapshot := &types.SharedAssessment{
		Token:           token,
		JobTitle:        jobTitle,
		Questions:       questions,
		DurationMinutes: durationMinutes,
		CreatedAt:       time.Now().UTC(),
	}
	if err := r.store.CreateSharedAssessment(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist shared assessment: %w", err)
	}

	return &ShareLink{
		Token: token,
		URL:   fmt.Sprintf("%s/assessment/%s", r.baseURL, token),
	}, nil
}

// Resolve returns the snapshot for a token. No authentication: holding the
// token is the authorization.
func (r *Registry) Resolve(ctx context.Context, token string) (*types.SharedAssessment, error) {
	snapshot, err := r.store.GetSharedAssessment(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up shared assessment: %w", err)
	}
	if snapshot == nil {
		return nil, &ErrTokenNotFound{Token: token}
	}
	return snapshot, nil
}

// newShareToken mints a cryptographically random, URL-safe opaque token.
func newShareToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
