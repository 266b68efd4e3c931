package postgres

import (
	"context"
	"fmt"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = $1`
	var (
		user domain.User
		role string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role, &user.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if user.Role, err = domain.ParseRole(role); err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return &user, nil
}

// Upsert inserts the user or refreshes name and password hash of the row with
// the same email. Emails are stored lowercased and trimmed, matching the
// users_email_lower_key index. The stored role is never changed.
func (r *userRepo) Upsert(ctx context.Context, user *domain.User) error {
	user.Email = domain.NormalizeEmail(user.Email)
	query := `INSERT INTO users (name, email, password_hash, role)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (email) DO UPDATE SET
                  name = EXCLUDED.name,
                  password_hash = EXCLUDED.password_hash
              RETURNING id, role, created_at`
	var role string
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.Role.String()).
		Scan(&user.ID, &role, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", mapError(err))
	}
	if user.Role, err = domain.ParseRole(role); err != nil {
		return fmt.Errorf("user %d: %w", user.ID, err)
	}
	return nil
}
