package memory

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"
)

type userRepo struct {
	s *Store
}

func NewUserRepository(s *Store) domain.UserRepository {
	return &userRepo{s: s}
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) Upsert(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user.Email = domain.NormalizeEmail(user.Email)
	key := user.Email
	if id, ok := r.s.emails[key]; ok {
		existing := r.s.users[id]
		existing.Name = user.Name
		existing.PasswordHash = user.PasswordHash
		r.s.users[id] = existing
		*user = existing
		return nil
	}

	r.s.lastUserID++
	user.ID = r.s.lastUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.s.users[user.ID] = *user
	r.s.emails[key] = user.ID
	return nil
}
