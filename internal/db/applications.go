package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/types"
)

// The two application tables predate each other and diverge: authenticated
// applications join candidate identity from the users table, public
// applications denormalize it under different column names. Both are
// normalized to types.Application here so nothing downstream touches the
// raw shapes.

const accountApplicationColumns = `
	a.id, a.job_id, a.candidate_id, u.name, u.email, u.phone, a.cover_letter,
	a.status, a.resume_url, a.assessment_token,
	a.match_score, a.resume_score, a.communication_score,
	a.applied_at, a.updated_at, j.title`

const publicApplicationColumns = `
	p.id, p.job_id, p.applicant_name, p.applicant_email, p.phone_number, p.cover_note,
	p.status, p.resume_url, p.assessment_token,
	p.match_score, p.resume_score, p.communication_score,
	p.created_at, p.updated_at, j.title`

// GetApplication returns an authenticated-collection application by ID, or
// nil if no row matches.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+accountApplicationColumns+`
		 FROM applications a
		 JOIN users u ON u.id = a.candidate_id
		 LEFT JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1`,
		id,
	)
	app, err := scanAccountApplication(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// GetPublicApplication returns a public-collection application by ID, or nil
// if no row matches.
func (db *DB) GetPublicApplication(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+publicApplicationColumns+`
		 FROM public_applications p
		 LEFT JOIN jobs j ON j.id = p.job_id
		 WHERE p.id = $1`,
		id,
	)
	app, err := scanPublicApplication(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get public application: %w", err)
	}
	return app, nil
}

// GetApplicationByToken finds the authenticated-collection application
// carrying an assessment token.
func (db *DB) GetApplicationByToken(ctx context.Context, token string) (*types.Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+accountApplicationColumns+`
		 FROM applications a
		 JOIN users u ON u.id = a.candidate_id
		 LEFT JOIN jobs j ON j.id = a.job_id
		 WHERE a.assessment_token = $1
		 LIMIT 1`,
		token,
	)
	app, err := scanAccountApplication(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application by token: %w", err)
	}
	return app, nil
}

// GetPublicApplicationByToken finds the public-collection application
// carrying an assessment token.
func (db *DB) GetPublicApplicationByToken(ctx context.Context, token string) (*types.Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+publicApplicationColumns+`
		 FROM public_applications p
		 LEFT JOIN jobs j ON j.id = p.job_id
		 WHERE p.assessment_token = $1
		 LIMIT 1`,
		token,
	)
	app, err := scanPublicApplication(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get public application by token: %w", err)
	}
	return app, nil
}

// ListApplicationsForCandidate returns the authenticated-collection
// applications scoped to a candidate by ID or email.
func (db *DB) ListApplicationsForCandidate(ctx context.Context, candidateID uuid.UUID, email string) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+accountApplicationColumns+`
		 FROM applications a
		 JOIN users u ON u.id = a.candidate_id
		 LEFT JOIN jobs j ON j.id = a.job_id
		 WHERE a.candidate_id = $1 OR LOWER(u.email) = LOWER($2)
		 ORDER BY a.applied_at DESC`,
		candidateID, email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		app, err := scanAccountApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// ListPublicApplicationsByEmail returns the public-collection applications
// submitted under an email address.
func (db *DB) ListPublicApplicationsByEmail(ctx context.Context, email string) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+publicApplicationColumns+`
		 FROM public_applications p
		 LEFT JOIN jobs j ON j.id = p.job_id
		 WHERE LOWER(p.applicant_email) = LOWER($1)
		 ORDER BY p.created_at DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list public applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		app, err := scanPublicApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan public application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// UpdateApplicationStatus persists a status change on the authenticated
// collection and returns the refreshed record with job title and candidate
// name re-attached.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*types.Application, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("application vanished during update: %s", id)
	}

	app, err := db.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("application vanished during update: %s", id)
	}
	app.Source = types.SourceAccount
	return app, nil
}

// UpdatePublicApplicationStatus persists a status change on the public
// collection and returns the refreshed record with job title re-attached.
func (db *DB) UpdatePublicApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*types.Application, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE public_applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update public application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("public application vanished during update: %s", id)
	}

	app, err := db.GetPublicApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("public application vanished during update: %s", id)
	}
	app.Source = types.SourcePublic
	return app, nil
}

// UpdateApplicationScores copies assessment results onto the application in
// whichever collection it resolved from. Callers treat failures as
// best-effort.
func (db *DB) UpdateApplicationScores(ctx context.Context, source types.ApplicationSource, id uuid.UUID, score, overallScore float64) error {
	table := "applications"
	if source == types.SourcePublic {
		table = "public_applications"
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE `+table+` SET match_score = $1, overall_score = $2, updated_at = NOW() WHERE id = $3`,
		score, overallScore, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s scores: %w", table, err)
	}
	return nil
}
