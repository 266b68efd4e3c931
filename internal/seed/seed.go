// Package seed loads demo accounts and jobs for local development.
package seed

import (
	"context"
	"fmt"

	"jobboard-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Account is a demo user with its plain-text password.
type Account struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

var DemoAccounts = []Account{
	{Name: "Alice Recruiter", Email: "alice@jobboard.local", Password: "alice-demo-pass", Role: domain.RoleAdmin},
	{Name: "Omar Recruiter", Email: "omar@jobboard.local", Password: "omar-demo-pass", Role: domain.RoleAdmin},
	{Name: "Carol Candidate", Email: "carol@jobboard.local", Password: "carol-demo-pass", Role: domain.RoleCandidate},
	{Name: "Dan Candidate", Email: "dan@jobboard.local", Password: "dan-demo-pass", Role: domain.RoleCandidate},
}

var demoJobs = []domain.JobInput{
	{Title: "Backend Engineer (Go)", Description: "Build and run the services behind the job board.", Location: strPtr("Berlin"), JobType: strPtr("Full-time")},
	{Title: "Frontend Engineer", Description: "Own the candidate-facing web app.", Location: strPtr("Remote"), JobType: strPtr("Full-time")},
	{Title: "Data Analyst", Description: "Turn application funnels into insight.", Location: strPtr("Amsterdam"), JobType: strPtr("Part-time")},
}

// Users upserts every demo account, hashing passwords with the given bcrypt
// cost, and returns the stored users in DemoAccounts order.
func Users(ctx context.Context, repo domain.UserRepository, cost int) ([]domain.User, error) {
	users := make([]domain.User, 0, len(DemoAccounts))
	for _, acc := range DemoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("seed: hash password for %s: %w", acc.Email, err)
		}
		u := domain.User{
			Name:         acc.Name,
			Email:        acc.Email,
			PasswordHash: string(hash),
			Role:         acc.Role,
		}
		if err := repo.Upsert(ctx, &u); err != nil {
			return nil, fmt.Errorf("seed: upsert %s: %w", acc.Email, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// Jobs posts the demo jobs as the given admin, skipping the step when the
// admin already owns jobs.
func Jobs(ctx context.Context, jobUC domain.JobUsecase, admin domain.Caller) (int, error) {
	existing, err := jobUC.ListMyJobs(ctx, admin)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, input := range demoJobs {
		if _, err := jobUC.CreateJob(ctx, admin, input); err != nil {
			return 0, fmt.Errorf("seed: create job %q: %w", input.Title, err)
		}
	}
	return len(demoJobs), nil
}

func strPtr(s string) *string { return &s }
