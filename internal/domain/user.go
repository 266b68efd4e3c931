package domain

import (
	"context"
	"strings"
	"time"
)

// User is owned by the authentication service; this backend only reads it.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	// Upsert creates or refreshes a user keyed by email. Used by tooling only.
	Upsert(ctx context.Context, user *User) error
}

// TokenVerifier validates an access token and returns its subject.
type TokenVerifier interface {
	VerifySubject(token string) (string, error)
}

type AuthUsecase interface {
	Identify(ctx context.Context, token string) (Caller, error)
	RequireRole(caller Caller, role Role) error
}
