package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestPool connects to TEST_DATABASE_URL, applies migrations and empties
// the tables. The test is skipped when the variable is unset.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, url))

	pool, err := database.NewPostgresConnection(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE favourites, applications, jobs, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func TestPostgresConstraints(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	jobs := NewJobRepository(pool)
	apps := NewApplicationRepository(pool)
	favs := NewFavouriteRepository(pool)

	admin := domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	candidate := domain.User{Name: "Cal", Email: "cal@example.com", PasswordHash: "x", Role: domain.RoleCandidate}
	require.NoError(t, users.Upsert(ctx, &admin))
	require.NoError(t, users.Upsert(ctx, &candidate))

	job := domain.Job{Title: "Engineer", Description: "d", CreatedBy: admin.ID}
	require.NoError(t, jobs.Create(ctx, &job))

	const workers = 16
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := apps.Create(ctx, &domain.Application{UserID: candidate.ID, JobID: job.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, domain.ErrDuplicate):
				duplicates++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, duplicates)

	require.NoError(t, favs.Create(ctx, &domain.Favourite{UserID: candidate.ID, JobID: job.ID}))
	assert.ErrorIs(t, favs.Create(ctx, &domain.Favourite{UserID: candidate.ID, JobID: job.ID}), domain.ErrDuplicate)

	_, err := jobs.GetOwned(ctx, job.ID, candidate.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, jobs.DeleteOwned(ctx, job.ID, admin.ID))
	mine, err := apps.GetByUserID(ctx, candidate.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	err = apps.Create(ctx, &domain.Application{UserID: candidate.ID, JobID: job.ID})
	assert.ErrorIs(t, err, domain.ErrReferenceMissing)
}

func TestPostgresUpsertMatchesEmailCaseInsensitively(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)

	first := domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	require.NoError(t, users.Upsert(ctx, &first))

	again := domain.User{Name: "Ada R.", Email: " ADA@Example.com ", PasswordHash: "y", Role: domain.RoleCandidate}
	require.NoError(t, users.Upsert(ctx, &again))
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, domain.RoleAdmin, again.Role)
	assert.Equal(t, "ada@example.com", again.Email)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)

	_, err := pool.Exec(ctx, `INSERT INTO users (name, email, password_hash, role) VALUES ('x', 'Ada@Example.com', 'x', 'candidate')`)
	assert.ErrorIs(t, mapError(err), domain.ErrDuplicate)
}
