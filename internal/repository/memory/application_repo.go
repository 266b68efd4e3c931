package memory

import (
	"context"
	"sort"
	"time"

	"jobboard-backend/internal/domain"
)

type applicationRepo struct {
	s *Store
}

func NewApplicationRepository(s *Store) domain.ApplicationRepository {
	return &applicationRepo{s: s}
}

func (r *applicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[app.UserID]; !ok {
		return domain.ErrReferenceMissing
	}
	if _, ok := r.s.jobs[app.JobID]; !ok {
		return domain.ErrReferenceMissing
	}
	key := pairKey{app.UserID, app.JobID}
	if _, exists := r.s.appPairs[key]; exists {
		return domain.ErrDuplicate
	}

	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
	r.s.lastAppID++
	app.ID = r.s.lastAppID
	r.s.apps[app.ID] = domain.Application{
		ID:        app.ID,
		UserID:    app.UserID,
		JobID:     app.JobID,
		AppliedAt: app.AppliedAt,
	}
	r.s.appPairs[key] = app.ID
	return nil
}

func (r *applicationRepo) GetByUserID(_ context.Context, userID int64) ([]domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Application{}
	for _, app := range r.s.apps {
		if app.UserID != userID {
			continue
		}
		job := r.s.jobs[app.JobID]
		app.JobTitle = strPtr(job.Title)
		app.JobDescription = strPtr(job.Description)
		app.JobLocation = job.Location
		app.JobType = job.JobType
		app.JobCreatedAt = timePtr(job.CreatedAt)
		app.RecruiterName = r.s.userName(job.CreatedBy)
		out = append(out, app)
	}
	sortApplications(out)
	return out, nil
}

func (r *applicationRepo) GetByJobID(_ context.Context, jobID int64) ([]domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Application{}
	for _, app := range r.s.apps {
		if app.JobID != jobID {
			continue
		}
		if u, ok := r.s.users[app.UserID]; ok {
			app.ApplicantName = strPtr(u.Name)
			app.ApplicantEmail = strPtr(u.Email)
			app.ApplicantJoinedAt = timePtr(u.CreatedAt)
		}
		out = append(out, app)
	}
	sortApplications(out)
	return out, nil
}

func sortApplications(apps []domain.Application) {
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].AppliedAt.Equal(apps[j].AppliedAt) {
			return apps[i].AppliedAt.After(apps[j].AppliedAt)
		}
		return apps[i].ID > apps[j].ID
	})
}
