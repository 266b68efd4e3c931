package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	if validate == nil {
		validate = validation.New()
	}
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, caller domain.Caller, input domain.JobInput) (*domain.Job, error) {
	if err := requireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	input, err := u.normalize(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &domain.Job{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		JobType:     input.JobType,
		CreatedBy:   caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		if errors.Is(err, domain.ErrReferenceMissing) {
			return nil, apperror.Unauthorized("Unknown user")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Location = strings.TrimSpace(filter.Location)
	filter.JobType = strings.TrimSpace(filter.JobType)
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	jobs, err := u.jobRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// UpdateJob validates before touching storage, then updates only a job the
// caller created. A missing job and someone else's job both answer Forbidden.
func (u *jobUsecase) UpdateJob(ctx context.Context, caller domain.Caller, id int64, input domain.JobInput) (*domain.Job, error) {
	if err := requireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	input, err := u.normalize(input)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		JobType:     input.JobType,
		CreatedBy:   caller.UserID,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := u.jobRepo.UpdateOwned(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errNotJobOwner()
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, caller domain.Caller, id int64) error {
	if err := requireRole(caller, domain.RoleAdmin); err != nil {
		return err
	}
	if err := u.jobRepo.DeleteOwned(ctx, id, caller.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errNotJobOwner()
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) ListMyJobs(ctx context.Context, caller domain.Caller) ([]domain.Job, error) {
	if err := requireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	jobs, err := u.jobRepo.FetchByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

// normalize trims every field, drops blank optionals and runs the binding rules.
func (u *jobUsecase) normalize(input domain.JobInput) (domain.JobInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Location = trimOptional(input.Location)
	input.JobType = trimOptional(input.JobType)

	if err := u.validate.Struct(input); err != nil {
		return input, apperror.Validation("Invalid job data", validation.FormatValidationErrors(err))
	}
	return input, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func errNotJobOwner() *apperror.AppError {
	return apperror.Forbidden("You can only manage jobs you created")
}
