package postgres

import (
	"context"
	"fmt"
	"strings"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `j.id, j.title, j.description, j.location, j.job_type, j.created_by, j.created_at, j.updated_at, u.name`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row scanner) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Location, &job.JobType,
		&job.CreatedBy, &job.CreatedAt, &job.UpdatedAt, &job.RecruiterName,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (title, description, location, job_type, created_by, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.Title, job.Description, job.Location, job.JobType,
		job.CreatedBy, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	if err != nil {
		return fmt.Errorf("insert job: %w", mapError(err))
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs j
		LEFT JOIN users u ON j.created_by = u.id
		WHERE j.id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return job, nil
}

func (r *jobRepo) GetOwned(ctx context.Context, id, ownerID int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs j
		LEFT JOIN users u ON j.created_by = u.id
		WHERE j.id = $1 AND j.created_by = $2`
	job, err := scanJob(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		return nil, mapError(err)
	}
	return job, nil
}

// Fetch lists jobs newest first. Each present filter is a case-insensitive
// substring match; filters combine with AND.
func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	var (
		conds []string
		args  []any
	)
	addLike := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, containsPattern(value))
		conds = append(conds, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, column, len(args)))
	}
	addLike("j.title", filter.Search)
	addLike("j.location", filter.Location)
	addLike("j.job_type", filter.JobType)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + jobColumns + `
		FROM jobs j
		LEFT JOIN users u ON j.created_by = u.id`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY j.created_at DESC, j.id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	return r.queryJobs(ctx, sb.String(), args...)
}

func (r *jobRepo) FetchByOwner(ctx context.Context, ownerID int64) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs j
		LEFT JOIN users u ON j.created_by = u.id
		WHERE j.created_by = $1
		ORDER BY j.created_at DESC, j.id DESC`
	return r.queryJobs(ctx, query, ownerID)
}

func (r *jobRepo) queryJobs(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

// UpdateOwned rewrites the editable fields when job.CreatedBy owns job.ID.
// A missing or foreign job both yield ErrNotFound.
func (r *jobRepo) UpdateOwned(ctx context.Context, job *domain.Job) error {
	query := `WITH updated AS (
			UPDATE jobs SET
				title = $3,
				description = $4,
				location = $5,
				job_type = $6,
				updated_at = $7
			WHERE id = $1 AND created_by = $2
			RETURNING *
		)
		SELECT ` + jobColumns + `
		FROM updated j
		LEFT JOIN users u ON j.created_by = u.id`

	updated, err := scanJob(r.db.QueryRow(ctx, query,
		job.ID, job.CreatedBy, job.Title, job.Description, job.Location, job.JobType, job.UpdatedAt,
	))
	if err != nil {
		return mapError(err)
	}
	*job = *updated
	return nil
}

// DeleteOwned locks the job row, removes everything that references it, then
// the job itself. Concurrent inserts against the job wait on the lock and
// then fail their foreign key check.
func (r *jobRepo) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete job: %w", err)
	}
	defer tx.Rollback(ctx)

	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM jobs WHERE id = $1 AND created_by = $2 FOR UPDATE`, id, ownerID).Scan(&lockedID)
	if err != nil {
		return mapError(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id); err != nil {
		return fmt.Errorf("delete job applications: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM favourites WHERE job_id = $1`, id); err != nil {
		return fmt.Errorf("delete job favourites: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete job: %w", err)
	}
	return nil
}
