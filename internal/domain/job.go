package domain

import (
	"context"
	"time"
)

type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    *string   `json:"location"`
	JobType     *string   `json:"job_type"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for read responses
	RecruiterName *string `json:"recruiter_name,omitempty"`
}

// JobInput carries the editable fields of a posting.
type JobInput struct {
	Title       string  `json:"title" binding:"required,notblank"`
	Description string  `json:"description" binding:"required,notblank"`
	Location    *string `json:"location"`
	JobType     *string `json:"job_type"`
}

// JobFilter narrows a public listing. Empty fields are ignored; a zero
// Limit means no limit.
type JobFilter struct {
	Search   string
	Location string
	JobType  string
	Limit    int
	Offset   int
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	// GetOwned returns ErrNotFound both when the job is missing and when
	// it belongs to someone else.
	GetOwned(ctx context.Context, id, ownerID int64) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter) ([]Job, error)
	FetchByOwner(ctx context.Context, ownerID int64) ([]Job, error)
	// UpdateOwned applies the update only when ownerID created the job.
	UpdateOwned(ctx context.Context, job *Job) error
	// DeleteOwned removes the job together with its applications and
	// favourites in one transaction.
	DeleteOwned(ctx context.Context, id, ownerID int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, caller Caller, input JobInput) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]Job, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	UpdateJob(ctx context.Context, caller Caller, id int64, input JobInput) (*Job, error)
	DeleteJob(ctx context.Context, caller Caller, id int64) error
	ListMyJobs(ctx context.Context, caller Caller) ([]Job, error)
}
