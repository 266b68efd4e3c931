package memory

import (
	"context"

	"jobboard-backend/internal/domain"
)

type jobRepo struct {
	s *Store
}

func NewJobRepository(s *Store) domain.JobRepository {
	return &jobRepo{s: s}
}

func (r *jobRepo) Create(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[job.CreatedBy]; !ok {
		return domain.ErrReferenceMissing
	}
	r.s.lastJobID++
	job.ID = r.s.lastJobID
	stored := *job
	stored.RecruiterName = nil
	r.s.jobs[job.ID] = stored
	return nil
}

func (r *jobRepo) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	job = r.s.withRecruiter(job)
	return &job, nil
}

func (r *jobRepo) GetOwned(_ context.Context, id, ownerID int64) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	job, ok := r.s.jobs[id]
	if !ok || job.CreatedBy != ownerID {
		return nil, domain.ErrNotFound
	}
	job = r.s.withRecruiter(job)
	return &job, nil
}

func (r *jobRepo) Fetch(_ context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	jobs := []domain.Job{}
	for _, job := range r.s.jobs {
		title := job.Title
		if !containsFold(&title, filter.Search) ||
			!containsFold(job.Location, filter.Location) ||
			!containsFold(job.JobType, filter.JobType) {
			continue
		}
		jobs = append(jobs, r.s.withRecruiter(job))
	}
	sortJobs(jobs)

	if filter.Offset > 0 {
		if filter.Offset >= len(jobs) {
			return []domain.Job{}, nil
		}
		jobs = jobs[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(jobs) {
		jobs = jobs[:filter.Limit]
	}
	return jobs, nil
}

func (r *jobRepo) FetchByOwner(_ context.Context, ownerID int64) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	jobs := []domain.Job{}
	for _, job := range r.s.jobs {
		if job.CreatedBy == ownerID {
			jobs = append(jobs, r.s.withRecruiter(job))
		}
	}
	sortJobs(jobs)
	return jobs, nil
}

func (r *jobRepo) UpdateOwned(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.jobs[job.ID]
	if !ok || existing.CreatedBy != job.CreatedBy {
		return domain.ErrNotFound
	}
	existing.Title = job.Title
	existing.Description = job.Description
	existing.Location = job.Location
	existing.JobType = job.JobType
	existing.UpdatedAt = job.UpdatedAt
	r.s.jobs[job.ID] = existing

	*job = r.s.withRecruiter(existing)
	return nil
}

func (r *jobRepo) DeleteOwned(_ context.Context, id, ownerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	job, ok := r.s.jobs[id]
	if !ok || job.CreatedBy != ownerID {
		return domain.ErrNotFound
	}

	for appID, app := range r.s.apps {
		if app.JobID == id {
			delete(r.s.apps, appID)
			delete(r.s.appPairs, pairKey{app.UserID, app.JobID})
		}
	}
	for favID, fav := range r.s.favourites {
		if fav.JobID == id {
			delete(r.s.favourites, favID)
			delete(r.s.favPairs, pairKey{fav.UserID, fav.JobID})
		}
	}
	delete(r.s.jobs, id)
	return nil
}
