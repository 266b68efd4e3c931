package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *Store
	users     domain.UserRepository
	jobs      domain.JobRepository
	apps      domain.ApplicationRepository
	favs      domain.FavouriteRepository
	admin     domain.User
	candidate domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := NewStore()
	f := &fixture{
		store: s,
		users: NewUserRepository(s),
		jobs:  NewJobRepository(s),
		apps:  NewApplicationRepository(s),
		favs:  NewFavouriteRepository(s),
	}
	f.admin = domain.User{Name: "Ada Recruiter", Email: "ada@example.com", Role: domain.RoleAdmin}
	f.candidate = domain.User{Name: "Cal Candidate", Email: "cal@example.com", Role: domain.RoleCandidate}
	require.NoError(t, f.users.Upsert(context.Background(), &f.admin))
	require.NoError(t, f.users.Upsert(context.Background(), &f.candidate))
	return f
}

func (f *fixture) createJob(t *testing.T, title string, location, jobType *string, at time.Time) domain.Job {
	t.Helper()
	job := domain.Job{
		Title:       title,
		Description: "desc",
		Location:    location,
		JobType:     jobType,
		CreatedBy:   f.admin.ID,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	require.NoError(t, f.jobs.Create(context.Background(), &job))
	return job
}

func ptr(s string) *string { return &s }

func TestUpsertKeepsRoleAndID(t *testing.T) {
	f := newFixture(t)
	again := domain.User{Name: "Ada R.", Email: "ADA@example.com", Role: domain.RoleCandidate}
	require.NoError(t, f.users.Upsert(context.Background(), &again))

	assert.Equal(t, f.admin.ID, again.ID)
	assert.Equal(t, domain.RoleAdmin, again.Role)
	assert.Equal(t, "Ada R.", again.Name)
	assert.Equal(t, "ada@example.com", again.Email)
}

func TestJobCreateRequiresExistingOwner(t *testing.T) {
	f := newFixture(t)
	job := domain.Job{Title: "t", Description: "d", CreatedBy: 999}
	assert.ErrorIs(t, f.jobs.Create(context.Background(), &job), domain.ErrReferenceMissing)
}

func TestFetchFiltersAndOrdering(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.createJob(t, "Senior Engineer", ptr("Berlin"), ptr("Full-time"), base)
	f.createJob(t, "Junior engineer", ptr("Remote"), ptr("Part-time"), base.Add(time.Hour))
	f.createJob(t, "Designer", ptr("Berlin"), nil, base.Add(2*time.Hour))
	f.createJob(t, "Engineering Manager", nil, nil, base.Add(3*time.Hour))

	ctx := context.Background()

	all, err := f.jobs.Fetch(ctx, domain.JobFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Engineering Manager", all[0].Title)
	assert.Equal(t, "Senior Engineer", all[3].Title)
	require.NotNil(t, all[0].RecruiterName)
	assert.Equal(t, "Ada Recruiter", *all[0].RecruiterName)

	engineers, err := f.jobs.Fetch(ctx, domain.JobFilter{Search: "ENGINEER"})
	require.NoError(t, err)
	assert.Len(t, engineers, 3)

	berlinEngineers, err := f.jobs.Fetch(ctx, domain.JobFilter{Search: "engineer", Location: "berlin"})
	require.NoError(t, err)
	require.Len(t, berlinEngineers, 1)
	assert.Equal(t, "Senior Engineer", berlinEngineers[0].Title)

	byType, err := f.jobs.Fetch(ctx, domain.JobFilter{JobType: "time"})
	require.NoError(t, err)
	assert.Len(t, byType, 2, "jobs without a job type never match a job type filter")

	page, err := f.jobs.Fetch(ctx, domain.JobFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Designer", page[0].Title)

	beyond, err := f.jobs.Fetch(ctx, domain.JobFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestOwnedAccessIsIndistinguishableFromMissing(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, "Engineer", nil, nil, time.Now())
	ctx := context.Background()

	_, err := f.jobs.GetOwned(ctx, job.ID, f.candidate.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.jobs.GetOwned(ctx, job.ID+100, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	update := domain.Job{ID: job.ID, CreatedBy: f.candidate.ID, Title: "hijack", Description: "x"}
	assert.ErrorIs(t, f.jobs.UpdateOwned(ctx, &update), domain.ErrNotFound)
	assert.ErrorIs(t, f.jobs.DeleteOwned(ctx, job.ID, f.candidate.ID), domain.ErrNotFound)

	stored, err := f.jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", stored.Title)
}

func TestApplicationPairIsUniqueUnderConcurrency(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, "Engineer", nil, nil, time.Now())

	const workers = 32
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.apps.Create(context.Background(), &domain.Application{UserID: f.candidate.ID, JobID: job.ID})
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				successes++
			case domain.ErrDuplicate:
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, duplicates)
}

func TestApplicationsAndFavouritesAreIndependent(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, "Engineer", ptr("Remote"), nil, time.Now())
	ctx := context.Background()

	require.NoError(t, f.apps.Create(ctx, &domain.Application{UserID: f.candidate.ID, JobID: job.ID}))
	require.NoError(t, f.favs.Create(ctx, &domain.Favourite{UserID: f.candidate.ID, JobID: job.ID}))
	assert.ErrorIs(t, f.favs.Create(ctx, &domain.Favourite{UserID: f.candidate.ID, JobID: job.ID}), domain.ErrDuplicate)

	mine, err := f.favs.GetByUserID(ctx, f.candidate.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Engineer", *mine[0].JobTitle)
	assert.Equal(t, "Remote", *mine[0].JobLocation)
	assert.Equal(t, "Ada Recruiter", *mine[0].RecruiterName)

	applicants, err := f.apps.GetByJobID(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(t, "cal@example.com", *applicants[0].ApplicantEmail)
}

func TestFavouriteDeleteReportsMissingPair(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, "Engineer", nil, nil, time.Now())
	ctx := context.Background()

	require.NoError(t, f.favs.Create(ctx, &domain.Favourite{UserID: f.candidate.ID, JobID: job.ID}))
	require.NoError(t, f.favs.Delete(ctx, f.candidate.ID, job.ID))
	assert.ErrorIs(t, f.favs.Delete(ctx, f.candidate.ID, job.ID), domain.ErrNotFound)

	require.NoError(t, f.favs.Create(ctx, &domain.Favourite{UserID: f.candidate.ID, JobID: job.ID}), "pair is free again after delete")
}

func TestDeleteOwnedCascades(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, "Engineer", nil, nil, time.Now())
	other := f.createJob(t, "Designer", nil, nil, time.Now())
	ctx := context.Background()

	require.NoError(t, f.apps.Create(ctx, &domain.Application{UserID: f.candidate.ID, JobID: job.ID}))
	require.NoError(t, f.favs.Create(ctx, &domain.Favourite{UserID: f.candidate.ID, JobID: job.ID}))
	require.NoError(t, f.apps.Create(ctx, &domain.Application{UserID: f.candidate.ID, JobID: other.ID}))

	require.NoError(t, f.jobs.DeleteOwned(ctx, job.ID, f.admin.ID))

	_, err := f.jobs.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.store.ReferencesTo(job.ID))
	assert.Equal(t, 1, f.store.ReferencesTo(other.ID))

	err = f.apps.Create(ctx, &domain.Application{UserID: f.candidate.ID, JobID: job.ID})
	assert.ErrorIs(t, err, domain.ErrReferenceMissing)
}
