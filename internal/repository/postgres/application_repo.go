package postgres

import (
	"context"
	"fmt"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The unique (user_id, job_id) constraint
// decides concurrent double submissions.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (user_id, job_id, applied_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}

	if err := r.db.QueryRow(ctx, query, app.UserID, app.JobID, app.AppliedAt).Scan(&app.ID); err != nil {
		return fmt.Errorf("insert application: %w", mapError(err))
	}
	return nil
}

// GetByUserID retrieves a candidate's applications with job and recruiter data
func (r *applicationRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.user_id, a.job_id, a.applied_at,
			j.title, j.description, j.location, j.job_type, j.created_at,
			u.name AS recruiter_name
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		LEFT JOIN users u ON j.created_by = u.id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.UserID, &app.JobID, &app.AppliedAt,
			&app.JobTitle, &app.JobDescription, &app.JobLocation, &app.JobType, &app.JobCreatedAt,
			&app.RecruiterName,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetByJobID retrieves all applications for a job with applicant data
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.user_id, a.job_id, a.applied_at,
			u.name, u.email, u.created_at
		FROM applications a
		JOIN users u ON a.user_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("query job applications: %w", err)
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.UserID, &app.JobID, &app.AppliedAt,
			&app.ApplicantName, &app.ApplicantEmail, &app.ApplicantJoinedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job application: %w", err)
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}
