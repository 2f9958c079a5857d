package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hiredesk/hiredesk/internal/types"
)

// scanAccountApplication reads one authenticated-collection row in the
// accountApplicationColumns order into the normalized shape.
func scanAccountApplication(row pgx.Row) (*types.Application, error) {
	var (
		app         types.Application
		candidateID uuid.UUID
		phone       *string
		coverLetter *string
		resumeURL   *string
		token       *string
		jobTitle    *string
		appliedAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(
		&app.ID, &app.JobID, &candidateID, &app.Name, &app.Email, &phone, &coverLetter,
		&app.Status, &resumeURL, &token,
		&app.MatchScore, &app.ResumeScore, &app.CommunicationScore,
		&appliedAt, &updatedAt, &jobTitle,
	)
	if err != nil {
		return nil, err
	}

	app.CandidateID = &candidateID
	app.AppliedAt = appliedAt
	app.UpdatedAt = updatedAt
	app.Source = types.SourceAccount
	setOptional(&app, phone, coverLetter, resumeURL, token, jobTitle)
	return &app, nil
}

// scanPublicApplication reads one public-collection row in the
// publicApplicationColumns order into the normalized shape, unifying the
// divergent column names.
func scanPublicApplication(row pgx.Row) (*types.Application, error) {
	var (
		app       types.Application
		name      *string
		email     *string
		phone     *string
		coverNote *string
		resumeURL *string
		token     *string
		jobTitle  *string
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&app.ID, &app.JobID, &name, &email, &phone, &coverNote,
		&app.Status, &resumeURL, &token,
		&app.MatchScore, &app.ResumeScore, &app.CommunicationScore,
		&createdAt, &updatedAt, &jobTitle,
	)
	if err != nil {
		return nil, err
	}

	if name != nil {
		app.Name = *name
	}
	if email != nil {
		app.Email = *email
	}
	app.AppliedAt = createdAt
	app.UpdatedAt = updatedAt
	app.Source = types.SourcePublic
	setOptional(&app, phone, coverNote, resumeURL, token, jobTitle)
	return &app, nil
}

func setOptional(app *types.Application, phone, coverLetter, resumeURL, token, jobTitle *string) {
	if phone != nil {
		app.Phone = *phone
	}
	if coverLetter != nil {
		app.CoverLetter = *coverLetter
	}
	if resumeURL != nil {
		app.ResumeURL = *resumeURL
	}
	if token != nil {
		app.AssessmentToken = *token
	}
	if jobTitle != nil {
		app.JobTitle = *jobTitle
	}
}
