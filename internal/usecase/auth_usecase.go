package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
)

type authUsecase struct {
	userRepo domain.UserRepository
	verifier domain.TokenVerifier
}

func NewAuthUsecase(userRepo domain.UserRepository, verifier domain.TokenVerifier) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, verifier: verifier}
}

// Identify resolves a bearer token to the caller behind it. The role always
// comes from the users table, never from token claims.
func (u *authUsecase) Identify(ctx context.Context, token string) (domain.Caller, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Caller{}, apperror.Unauthorized("Authentication required")
	}
	if u.verifier == nil {
		return domain.Caller{}, apperror.Unauthorized("Invalid or expired token")
	}

	subject, err := u.verifier.VerifySubject(token)
	if err != nil {
		logger.Log.Debug("token verification failed", "error", err)
		return domain.Caller{}, apperror.Unauthorized("Invalid or expired token")
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Caller{}, apperror.Unauthorized("Invalid token subject")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Caller{}, apperror.Unauthorized("Unknown user")
		}
		return domain.Caller{}, apperror.Internal(err)
	}
	if !user.Role.Valid() {
		return domain.Caller{}, apperror.Unauthorized("Unknown user")
	}

	return domain.Caller{UserID: user.ID, Role: user.Role}, nil
}

func (u *authUsecase) RequireRole(caller domain.Caller, role domain.Role) error {
	return requireRole(caller, role)
}

// requireRole is shared by every usecase with a role precondition.
func requireRole(caller domain.Caller, role domain.Role) error {
	if caller.UserID <= 0 || !caller.Role.Valid() {
		return apperror.Unauthorized("Authentication required")
	}
	if caller.Role != role {
		return apperror.Forbidden("This action requires the " + role.String() + " role")
	}
	return nil
}
