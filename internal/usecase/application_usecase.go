package usecase

import (
	"context"
	"errors"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
	}
}

// Apply records a candidate's application. The storage unique constraint
// settles concurrent double submissions; the existence check up front only
// gives the common case a precise error.
func (uc *applicationUsecase) Apply(ctx context.Context, caller domain.Caller, jobID int64) (*domain.Application, error) {
	if err := requireRole(caller, domain.RoleCandidate); err != nil {
		return nil, err
	}

	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	app := &domain.Application{UserID: caller.UserID, JobID: jobID}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, apperror.DuplicateApplication("You have already applied to this job")
		case errors.Is(err, domain.ErrReferenceMissing):
			// Job deleted between the check and the insert.
			return nil, apperror.NotFound("Job not found")
		default:
			return nil, apperror.Internal(err)
		}
	}
	return app, nil
}

// ListMine returns the caller's applications, newest first
func (uc *applicationUsecase) ListMine(ctx context.Context, caller domain.Caller) ([]domain.Application, error) {
	if err := requireRole(caller, domain.RoleCandidate); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListForJob returns the applicants of a job the caller owns
func (uc *applicationUsecase) ListForJob(ctx context.Context, caller domain.Caller, jobID int64) ([]domain.Application, error) {
	if _, err := uc.ownedJob(ctx, caller, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ExportForJob renders the applicant list of an owned job as an xlsx file
func (uc *applicationUsecase) ExportForJob(ctx context.Context, caller domain.Caller, jobID int64) ([]byte, string, error) {
	job, err := uc.ownedJob(ctx, caller, jobID)
	if err != nil {
		return nil, "", err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	data, filename, err := exportApplicantsExcel(job, apps)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return data, filename, nil
}

// ownedJob loads a job only if the caller is an admin who created it.
// Missing and foreign jobs are both Forbidden.
func (uc *applicationUsecase) ownedJob(ctx context.Context, caller domain.Caller, jobID int64) (*domain.Job, error) {
	if err := requireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	job, err := uc.jobRepo.GetOwned(ctx, jobID, caller.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Forbidden("You can only view applicants of jobs you created")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}
