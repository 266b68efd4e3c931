package usecase

import (
	"context"
	"errors"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type favouriteUsecase struct {
	favouriteRepo domain.FavouriteRepository
	jobRepo       domain.JobRepository
}

func NewFavouriteUsecase(favRepo domain.FavouriteRepository, jobRepo domain.JobRepository) domain.FavouriteUsecase {
	return &favouriteUsecase{
		favouriteRepo: favRepo,
		jobRepo:       jobRepo,
	}
}

func (uc *favouriteUsecase) Save(ctx context.Context, caller domain.Caller, jobID int64) (*domain.Favourite, error) {
	if err := requireRole(caller, domain.RoleCandidate); err != nil {
		return nil, err
	}

	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	fav := &domain.Favourite{UserID: caller.UserID, JobID: jobID}
	if err := uc.favouriteRepo.Create(ctx, fav); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, apperror.DuplicateFavourite("Job is already in your favourites")
		case errors.Is(err, domain.ErrReferenceMissing):
			return nil, apperror.NotFound("Job not found")
		default:
			return nil, apperror.Internal(err)
		}
	}
	return fav, nil
}

func (uc *favouriteUsecase) Unsave(ctx context.Context, caller domain.Caller, jobID int64) error {
	if err := requireRole(caller, domain.RoleCandidate); err != nil {
		return err
	}
	if err := uc.favouriteRepo.Delete(ctx, caller.UserID, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Favourite not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *favouriteUsecase) ListMine(ctx context.Context, caller domain.Caller) ([]domain.Favourite, error) {
	if err := requireRole(caller, domain.RoleCandidate); err != nil {
		return nil, err
	}
	favs, err := uc.favouriteRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return favs, nil
}
