package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/types"
)

// GetJob returns a job by ID, or nil if no row matches. This core only reads
// jobs: as a join target and for the ownership fields the authorization
// guard needs.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var (
		job        types.Job
		ownerID    *uuid.UUID
		ownerEmail *string
		skills     []string
	)

	err := db.pool.QueryRow(ctx,
		`SELECT id, title, COALESCE(skills, '{}'), COALESCE(experience_years, 0), owner_id, owner_email, created_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Title, &skills, &job.ExperienceYears, &ownerID, &ownerEmail, &job.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job.Skills = skills
	if ownerID != nil {
		job.OwnerID = *ownerID
	}
	if ownerEmail != nil {
		job.OwnerEmail = *ownerEmail
	}
	return &job, nil
}
