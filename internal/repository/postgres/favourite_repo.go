package postgres

import (
	"context"
	"fmt"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type favouriteRepo struct {
	db *pgxpool.Pool
}

func NewFavouriteRepository(db *pgxpool.Pool) domain.FavouriteRepository {
	return &favouriteRepo{db: db}
}

func (r *favouriteRepo) Create(ctx context.Context, fav *domain.Favourite) error {
	query := `
		INSERT INTO favourites (user_id, job_id, saved_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	if fav.SavedAt.IsZero() {
		fav.SavedAt = time.Now().UTC()
	}

	if err := r.db.QueryRow(ctx, query, fav.UserID, fav.JobID, fav.SavedAt).Scan(&fav.ID); err != nil {
		return fmt.Errorf("insert favourite: %w", mapError(err))
	}
	return nil
}

func (r *favouriteRepo) Delete(ctx context.Context, userID, jobID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM favourites WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return fmt.Errorf("delete favourite: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *favouriteRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.Favourite, error) {
	query := `
		SELECT
			f.id, f.user_id, f.job_id, f.saved_at,
			j.title, j.description, j.location, j.job_type, j.created_at,
			u.name AS recruiter_name
		FROM favourites f
		JOIN jobs j ON f.job_id = j.id
		LEFT JOIN users u ON j.created_by = u.id
		WHERE f.user_id = $1
		ORDER BY f.saved_at DESC, f.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query favourites: %w", err)
	}
	defer rows.Close()

	favourites := []domain.Favourite{}
	for rows.Next() {
		var fav domain.Favourite
		if err := rows.Scan(
			&fav.ID, &fav.UserID, &fav.JobID, &fav.SavedAt,
			&fav.JobTitle, &fav.JobDescription, &fav.JobLocation, &fav.JobType, &fav.JobCreatedAt,
			&fav.RecruiterName,
		); err != nil {
			return nil, fmt.Errorf("scan favourite: %w", err)
		}
		favourites = append(favourites, fav)
	}
	return favourites, rows.Err()
}
