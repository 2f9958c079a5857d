package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/assessment"
	"github.com/hiredesk/hiredesk/internal/types"
)

// GetAssessmentByJob returns the persisted assessment for a job, or nil if
// none exists.
func (db *DB) GetAssessmentByJob(ctx context.Context, jobID uuid.UUID) (*types.Assessment, error) {
	var (
		a         types.Assessment
		questions []byte
	)

	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, questions, duration_minutes, passing_score, created_at
		 FROM job_assessments WHERE job_id = $1`,
		jobID,
	).Scan(&a.ID, &a.JobID, &questions, &a.DurationMinutes, &a.PassingScore, &a.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if err := json.Unmarshal(questions, &a.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode stored questions: %w", err)
	}
	return &a, nil
}

// CreateAssessment persists a job-bound assessment.
func (db *DB) CreateAssessment(ctx context.Context, a *types.Assessment) error {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_assessments (id, job_id, questions, duration_minutes, passing_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobID, questions, a.DurationMinutes, a.PassingScore, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// DeleteAssessmentByJob removes a job's assessment; reports whether a row
// was actually deleted.
func (db *DB) DeleteAssessmentByJob(ctx context.Context, jobID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM job_assessments WHERE job_id = $1`, jobID)
	if err != nil {
		return false, fmt.Errorf("failed to delete assessment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CreateSharedAssessment persists a token-addressed snapshot. A missing
// shared_assessments table is reported as a schema mismatch so callers can
// surface a remediation hint.
func (db *DB) CreateSharedAssessment(ctx context.Context, s *types.SharedAssessment) error {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO shared_assessments (token, job_title, questions, duration_minutes, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.Token, s.JobTitle, questions, s.DurationMinutes, s.CreatedAt,
	)
	if err != nil {
		if isUndefinedTable(err) {
			return fmt.Errorf("shared_assessments table does not exist: %w", assessment.ErrSchemaMismatch)
		}
		return fmt.Errorf("failed to create shared assessment: %w", err)
	}
	return nil
}

// GetSharedAssessment returns the snapshot for a token, or nil if the token
// is unknown.
func (db *DB) GetSharedAssessment(ctx context.Context, token string) (*types.SharedAssessment, error) {
	var (
		s         types.SharedAssessment
		questions []byte
	)

	err := db.pool.QueryRow(ctx,
		`SELECT token, COALESCE(job_title, ''), questions, duration_minutes, created_at
		 FROM shared_assessments WHERE token = $1`,
		token,
	).Scan(&s.Token, &s.JobTitle, &questions, &s.DurationMinutes, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("shared_assessments table does not exist: %w", assessment.ErrSchemaMismatch)
		}
		return nil, fmt.Errorf("failed to get shared assessment: %w", err)
	}

	if err := json.Unmarshal(questions, &s.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode stored questions: %w", err)
	}
	return &s, nil
}

// FindScoreByApplication returns an existing score record for an
// application, or nil if none exists.
func (db *DB) FindScoreByApplication(ctx context.Context, applicationID uuid.UUID) (*types.ScoreRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, application_id, job_id, COALESCE(token, ''), score, overall_score,
		        resume_score, communication_score, correct_count, total_questions, created_at
		 FROM assessment_scores WHERE application_id = $1
		 LIMIT 1`,
		applicationID,
	)
	return db.scanScore(row)
}

// FindScoreByJob returns an existing score record for a job. Deployments
// whose assessment_scores table predates the job column report a schema
// mismatch instead.
func (db *DB) FindScoreByJob(ctx context.Context, jobID uuid.UUID) (*types.ScoreRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, application_id, job_id, COALESCE(token, ''), score, overall_score,
		        resume_score, communication_score, correct_count, total_questions, created_at
		 FROM assessment_scores WHERE job_id = $1
		 LIMIT 1`,
		jobID,
	)
	rec, err := db.scanScore(row)
	if err != nil && isUndefinedColumn(err) {
		return nil, fmt.Errorf("assessment_scores has no job_id column: %w", assessment.ErrSchemaMismatch)
	}
	return rec, err
}

// InsertScore persists one completed-attempt record. A nil JobID omits the
// job column entirely so the insert also works on pre-migration schemas; a
// non-nil JobID on such a schema reports a mismatch for the caller's
// one-shot retry.
func (db *DB) InsertScore(ctx context.Context, rec *types.ScoreRecord) error {
	var err error
	if rec.JobID != nil {
		_, err = db.pool.Exec(ctx,
			`INSERT INTO assessment_scores
			   (id, application_id, job_id, token, score, overall_score,
			    resume_score, communication_score, correct_count, total_questions, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			rec.ID, rec.ApplicationID, rec.JobID, rec.Token, rec.Score, rec.OverallScore,
			rec.ResumeScore, rec.CommunicationScore, rec.CorrectCount, rec.TotalQuestions, rec.CreatedAt,
		)
	} else {
		_, err = db.pool.Exec(ctx,
			`INSERT INTO assessment_scores
			   (id, application_id, token, score, overall_score,
			    resume_score, communication_score, correct_count, total_questions, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			rec.ID, rec.ApplicationID, rec.Token, rec.Score, rec.OverallScore,
			rec.ResumeScore, rec.CommunicationScore, rec.CorrectCount, rec.TotalQuestions, rec.CreatedAt,
		)
	}
	if err != nil {
		if isUndefinedColumn(err) {
			return fmt.Errorf("assessment_scores schema is missing a column: %w", assessment.ErrSchemaMismatch)
		}
		if isUndefinedTable(err) {
			return fmt.Errorf("assessment_scores table does not exist: %w", assessment.ErrSchemaMismatch)
		}
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

func (db *DB) scanScore(row interface{ Scan(dest ...any) error }) (*types.ScoreRecord, error) {
	var rec types.ScoreRecord
	err := row.Scan(
		&rec.ID, &rec.ApplicationID, &rec.JobID, &rec.Token, &rec.Score, &rec.OverallScore,
		&rec.ResumeScore, &rec.CommunicationScore, &rec.CorrectCount, &rec.TotalQuestions, &rec.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan score: %w", err)
	}
	return &rec, nil
}
