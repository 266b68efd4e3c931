package seed

import (
	"context"
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/repository/memory"
	"jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUsersHashesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewUserRepository(store)

	users, err := Users(ctx, repo, bcrypt.MinCost)
	require.NoError(t, err)
	require.Len(t, users, len(DemoAccounts))

	for i, u := range users {
		assert.NotZero(t, u.ID)
		assert.Equal(t, DemoAccounts[i].Role, u.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(DemoAccounts[i].Password)))
	}

	again, err := Users(ctx, repo, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, users[0].ID, again[0].ID)
}

func TestJobsSeedsOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users, err := Users(ctx, memory.NewUserRepository(store), bcrypt.MinCost)
	require.NoError(t, err)

	jobUC := usecase.NewJobUsecase(memory.NewJobRepository(store), nil)
	admin := domain.Caller{UserID: users[0].ID, Role: users[0].Role}

	n, err := Jobs(ctx, jobUC, admin)
	require.NoError(t, err)
	assert.Equal(t, len(demoJobs), n)

	n, err = Jobs(ctx, jobUC, admin)
	require.NoError(t, err)
	assert.Zero(t, n)

	jobs, _, _ := store.Counts()
	assert.Equal(t, len(demoJobs), jobs)
}
