package domain

import (
	"context"
	"time"
)

// Application records that a candidate applied to a job. At most one exists
// per (UserID, JobID).
type Application struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	JobID     int64     `json:"job_id"`
	AppliedAt time.Time `json:"applied_at"`

	// Joined data for the candidate's own listing
	JobTitle       *string    `json:"job_title,omitempty"`
	JobDescription *string    `json:"job_description,omitempty"`
	JobLocation    *string    `json:"job_location,omitempty"`
	JobType        *string    `json:"job_type,omitempty"`
	JobCreatedAt   *time.Time `json:"job_created_at,omitempty"`
	RecruiterName  *string    `json:"recruiter_name,omitempty"`

	// Joined data for the job owner's applicant listing
	ApplicantName     *string    `json:"applicant_name,omitempty"`
	ApplicantEmail    *string    `json:"applicant_email,omitempty"`
	ApplicantJoinedAt *time.Time `json:"applicant_joined_at,omitempty"`
}

type ApplicationRepository interface {
	// Create returns ErrDuplicate when the pair already exists and
	// ErrReferenceMissing when the job or user is gone.
	Create(ctx context.Context, app *Application) error
	GetByUserID(ctx context.Context, userID int64) ([]Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, caller Caller, jobID int64) (*Application, error)
	ListMine(ctx context.Context, caller Caller) ([]Application, error)
	ListForJob(ctx context.Context, caller Caller, jobID int64) ([]Application, error)
	ExportForJob(ctx context.Context, caller Caller, jobID int64) ([]byte, string, error)
}
