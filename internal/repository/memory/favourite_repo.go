package memory

import (
	"context"
	"sort"
	"time"

	"jobboard-backend/internal/domain"
)

type favouriteRepo struct {
	s *Store
}

func NewFavouriteRepository(s *Store) domain.FavouriteRepository {
	return &favouriteRepo{s: s}
}

func (r *favouriteRepo) Create(_ context.Context, fav *domain.Favourite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[fav.UserID]; !ok {
		return domain.ErrReferenceMissing
	}
	if _, ok := r.s.jobs[fav.JobID]; !ok {
		return domain.ErrReferenceMissing
	}
	key := pairKey{fav.UserID, fav.JobID}
	if _, exists := r.s.favPairs[key]; exists {
		return domain.ErrDuplicate
	}

	if fav.SavedAt.IsZero() {
		fav.SavedAt = time.Now().UTC()
	}
	r.s.lastFavID++
	fav.ID = r.s.lastFavID
	r.s.favourites[fav.ID] = domain.Favourite{
		ID:      fav.ID,
		UserID:  fav.UserID,
		JobID:   fav.JobID,
		SavedAt: fav.SavedAt,
	}
	r.s.favPairs[key] = fav.ID
	return nil
}

func (r *favouriteRepo) Delete(_ context.Context, userID, jobID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey{userID, jobID}
	id, ok := r.s.favPairs[key]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.s.favPairs, key)
	delete(r.s.favourites, id)
	return nil
}

func (r *favouriteRepo) GetByUserID(_ context.Context, userID int64) ([]domain.Favourite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Favourite{}
	for _, fav := range r.s.favourites {
		if fav.UserID != userID {
			continue
		}
		job := r.s.jobs[fav.JobID]
		fav.JobTitle = strPtr(job.Title)
		fav.JobDescription = strPtr(job.Description)
		fav.JobLocation = job.Location
		fav.JobType = job.JobType
		fav.JobCreatedAt = timePtr(job.CreatedAt)
		fav.RecruiterName = r.s.userName(job.CreatedBy)
		out = append(out, fav)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
