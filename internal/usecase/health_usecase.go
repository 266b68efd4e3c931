package usecase

import (
	"context"
	"time"
)

// Pinger is any dependency whose liveness the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthUsecase interface {
	// Check reports per-dependency status and whether every required one is up.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	database Pinger
	cache    Pinger
	timeout  time.Duration
}

// NewHealthUsecase takes the database pinger (required when non-nil) and an
// optional cache pinger whose failure degrades but does not fail the check.
func NewHealthUsecase(database, cache Pinger) HealthUsecase {
	return &healthUsecase{database: database, cache: cache, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	status := map[string]string{"status": "ok"}
	healthy := true

	if u.database != nil {
		if err := u.database.Ping(ctx); err != nil {
			status["database"] = "down"
			status["status"] = "unavailable"
			healthy = false
		} else {
			status["database"] = "up"
		}
	}

	if u.cache != nil {
		if err := u.cache.Ping(ctx); err != nil {
			status["cache"] = "down"
			if healthy {
				status["status"] = "degraded"
			}
		} else {
			status["cache"] = "up"
		}
	}

	return status, healthy
}
