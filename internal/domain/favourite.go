package domain

import (
	"context"
	"time"
)

// Favourite is a candidate's bookmark on a job. At most one exists per
// (UserID, JobID), independently of applications.
type Favourite struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	JobID   int64     `json:"job_id"`
	SavedAt time.Time `json:"saved_at"`

	JobTitle       *string    `json:"job_title,omitempty"`
	JobDescription *string    `json:"job_description,omitempty"`
	JobLocation    *string    `json:"job_location,omitempty"`
	JobType        *string    `json:"job_type,omitempty"`
	JobCreatedAt   *time.Time `json:"job_created_at,omitempty"`
	RecruiterName  *string    `json:"recruiter_name,omitempty"`
}

type FavouriteRepository interface {
	Create(ctx context.Context, fav *Favourite) error
	// Delete returns ErrNotFound when the pair does not exist.
	Delete(ctx context.Context, userID, jobID int64) error
	GetByUserID(ctx context.Context, userID int64) ([]Favourite, error)
}

type FavouriteUsecase interface {
	Save(ctx context.Context, caller Caller, jobID int64) (*Favourite, error)
	Unsave(ctx context.Context, caller Caller, jobID int64) error
	ListMine(ctx context.Context, caller Caller) ([]Favourite, error)
}
