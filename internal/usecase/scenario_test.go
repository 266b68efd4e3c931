package usecase_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/repository/memory"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type board struct {
	store      *memory.Store
	jobs       domain.JobUsecase
	apps       domain.ApplicationUsecase
	favs       domain.FavouriteUsecase
	admin      domain.Caller
	otherAdmin domain.Caller
	candidate  domain.Caller
	other      domain.Caller
}

func newBoard(t *testing.T) *board {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	jobRepo := memory.NewJobRepository(store)

	caller := func(name, email string, role domain.Role) domain.Caller {
		u := &domain.User{Name: name, Email: email, Role: role}
		require.NoError(t, users.Upsert(ctx, u))
		return domain.Caller{UserID: u.ID, Role: u.Role}
	}

	return &board{
		store:      store,
		jobs:       usecase.NewJobUsecase(jobRepo, nil),
		apps:       usecase.NewApplicationUsecase(memory.NewApplicationRepository(store), jobRepo),
		favs:       usecase.NewFavouriteUsecase(memory.NewFavouriteRepository(store), jobRepo),
		admin:      caller("Alice", "alice@example.com", domain.RoleAdmin),
		otherAdmin: caller("Omar", "omar@example.com", domain.RoleAdmin),
		candidate:  caller("Carol", "carol@example.com", domain.RoleCandidate),
		other:      caller("Dan", "dan@example.com", domain.RoleCandidate),
	}
}

func (b *board) post(t *testing.T, title string, location, jobType *string) *domain.Job {
	t.Helper()
	job, err := b.jobs.CreateJob(context.Background(), b.admin, domain.JobInput{
		Title: title, Description: title + " description", Location: location, JobType: jobType,
	})
	require.NoError(t, err)
	return job
}

func TestConcurrentApplyHasExactlyOneWinner(t *testing.T) {
	b := newBoard(t)
	job := b.post(t, "Engineer", nil, nil)

	const workers = 25
	kinds := make(chan apperror.Kind, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := b.apps.Apply(context.Background(), b.candidate, job.ID)
			if err == nil {
				kinds <- ""
				return
			}
			kinds <- apperror.KindOf(err)
		}()
	}
	wg.Wait()
	close(kinds)

	counts := map[apperror.Kind]int{}
	for k := range kinds {
		counts[k]++
	}
	assert.Equal(t, 1, counts[""])
	assert.Equal(t, workers-1, counts[apperror.KindDuplicateApplication])

	mine, err := b.apps.ListMine(context.Background(), b.candidate)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestConcurrentSaveHasExactlyOneWinner(t *testing.T) {
	b := newBoard(t)
	job := b.post(t, "Engineer", nil, nil)

	const workers = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := b.favs.Save(context.Background(), b.candidate, job.ID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.True(t, apperror.Is(err, apperror.KindDuplicateFavourite))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestNonOwnerCannotLearnWhetherJobExists(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	job := b.post(t, "Engineer", nil, nil)
	input := domain.JobInput{Title: "Taken over", Description: "x"}

	for _, id := range []int64{job.ID, job.ID + 1000} {
		err := b.jobs.DeleteJob(ctx, b.otherAdmin, id)
		assert.True(t, apperror.Is(err, apperror.KindForbidden), "delete %d", id)

		_, err = b.jobs.UpdateJob(ctx, b.otherAdmin, id, input)
		assert.True(t, apperror.Is(err, apperror.KindForbidden), "update %d", id)

		_, err = b.apps.ListForJob(ctx, b.otherAdmin, id)
		assert.True(t, apperror.Is(err, apperror.KindForbidden), "applicants %d", id)
	}

	stored, err := b.jobs.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", stored.Title)
}

func TestListJobsFilters(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	b.post(t, "Backend Engineer", strPtr("Berlin"), strPtr("Full-time"))
	b.post(t, "Frontend engineer", strPtr("Remote"), strPtr("Contract"))
	b.post(t, "Office Manager", strPtr("Berlin"), strPtr("Full-time"))

	jobs, err := b.jobs.ListJobs(ctx, domain.JobFilter{Search: "engineer", Location: "BERLIN"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)

	jobs, err = b.jobs.ListJobs(ctx, domain.JobFilter{JobType: "full"})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Office Manager", jobs[0].Title, "newest first")

	jobs, err = b.jobs.ListJobs(ctx, domain.JobFilter{Search: "  "})
	require.NoError(t, err)
	assert.Len(t, jobs, 3, "blank filters are no-ops")
}

func TestSaveUnsaveUnsave(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	job := b.post(t, "Engineer", nil, nil)

	_, err := b.favs.Save(ctx, b.candidate, job.ID)
	require.NoError(t, err)
	require.NoError(t, b.favs.Unsave(ctx, b.candidate, job.ID))
	assert.True(t, apperror.Is(b.favs.Unsave(ctx, b.candidate, job.ID), apperror.KindNotFound))

	favs, err := b.favs.ListMine(ctx, b.candidate)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestRoleEnforcement(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	job := b.post(t, "Engineer", nil, nil)

	_, err := b.jobs.CreateJob(ctx, b.candidate, domain.JobInput{Title: "t", Description: "d"})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = b.apps.Apply(ctx, b.admin, job.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = b.favs.Save(ctx, b.admin, job.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = b.apps.ListForJob(ctx, b.candidate, job.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = b.jobs.ListMyJobs(ctx, b.candidate)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}

func TestApplyDuplicateAndApplicantView(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	job := b.post(t, "Engineer", strPtr("Remote"), nil)

	_, err := b.apps.Apply(ctx, b.candidate, job.ID)
	require.NoError(t, err)

	_, err = b.apps.Apply(ctx, b.candidate, job.ID)
	assert.True(t, apperror.Is(err, apperror.KindDuplicateApplication))

	_, err = b.apps.Apply(ctx, b.candidate, job.ID+1000)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	mine, err := b.apps.ListMine(ctx, b.candidate)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Engineer", *mine[0].JobTitle)
	assert.Equal(t, "Alice", *mine[0].RecruiterName)

	applicants, err := b.apps.ListForJob(ctx, b.admin, job.ID)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(t, "Carol", *applicants[0].ApplicantName)

	_, err = b.apps.ListForJob(ctx, b.otherAdmin, job.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}

func TestDeleteJobLeavesNoOrphans(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	job := b.post(t, "Engineer", nil, nil)
	keep := b.post(t, "Designer", nil, nil)

	_, err := b.apps.Apply(ctx, b.candidate, job.ID)
	require.NoError(t, err)
	_, err = b.apps.Apply(ctx, b.other, job.ID)
	require.NoError(t, err)
	_, err = b.favs.Save(ctx, b.candidate, job.ID)
	require.NoError(t, err)
	_, err = b.favs.Save(ctx, b.other, keep.ID)
	require.NoError(t, err)

	require.NoError(t, b.jobs.DeleteJob(ctx, b.admin, job.ID))

	_, err = b.jobs.GetJob(ctx, job.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Zero(t, b.store.ReferencesTo(job.ID))

	jobs, apps, favs := b.store.Counts()
	assert.Equal(t, 1, jobs)
	assert.Zero(t, apps)
	assert.Equal(t, 1, favs)

	mine, err := b.apps.ListMine(ctx, b.candidate)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestExportForJob(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	job := b.post(t, "Senior Go Engineer!", nil, nil)

	_, err := b.apps.Apply(ctx, b.candidate, job.ID)
	require.NoError(t, err)

	_, _, err = b.apps.ExportForJob(ctx, b.otherAdmin, job.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	data, filename, err := b.apps.ExportForJob(ctx, b.admin, job.ID)
	require.NoError(t, err)
	assert.Contains(t, filename, "senior_go_engineer")
	assert.Contains(t, filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Applicants")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "NAME", rows[0][1])
	assert.Equal(t, "Carol", rows[1][1])
	assert.Equal(t, "carol@example.com", rows[1][2])
}

func TestUpdateJobLastWriterWins(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	job := b.post(t, "Engineer", strPtr("Berlin"), nil)

	updated, err := b.jobs.UpdateJob(ctx, b.admin, job.ID, domain.JobInput{Title: "Staff Engineer", Description: "new"})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.Nil(t, updated.Location)
	assert.Equal(t, job.CreatedAt.Unix(), updated.CreatedAt.Unix())

	mine, err := b.jobs.ListMyJobs(ctx, b.admin)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Staff Engineer", mine[0].Title)
}
