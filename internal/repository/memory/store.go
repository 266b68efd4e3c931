package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard-backend/internal/domain"
)

type pairKey struct {
	userID int64
	jobID  int64
}

// Store keeps all records in-process behind one lock. It enforces the same
// unique (user, job) pairs and foreign keys as the Postgres schema, so the
// usecases behave identically against it.
type Store struct {
	mu sync.RWMutex

	lastUserID int64
	lastJobID  int64
	lastAppID  int64
	lastFavID  int64

	users      map[int64]domain.User
	emails     map[string]int64
	jobs       map[int64]domain.Job
	apps       map[int64]domain.Application
	appPairs   map[pairKey]int64
	favourites map[int64]domain.Favourite
	favPairs   map[pairKey]int64
}

// NewStore initializes an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:      make(map[int64]domain.User),
		emails:     make(map[string]int64),
		jobs:       make(map[int64]domain.Job),
		apps:       make(map[int64]domain.Application),
		appPairs:   make(map[pairKey]int64),
		favourites: make(map[int64]domain.Favourite),
		favPairs:   make(map[pairKey]int64),
	}
}

// Counts reports the number of stored jobs, applications and favourites.
func (s *Store) Counts() (jobs, applications, favourites int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs), len(s.apps), len(s.favourites)
}

// ReferencesTo counts applications and favourites pointing at jobID.
func (s *Store) ReferencesTo(jobID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, a := range s.apps {
		if a.JobID == jobID {
			n++
		}
	}
	for _, f := range s.favourites {
		if f.JobID == jobID {
			n++
		}
	}
	return n
}

// userName must be called with the lock held.
func (s *Store) userName(id int64) *string {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	name := u.Name
	return &name
}

// withRecruiter must be called with the lock held.
func (s *Store) withRecruiter(job domain.Job) domain.Job {
	job.RecruiterName = s.userName(job.CreatedBy)
	return job
}

func sortJobs(jobs []domain.Job) {
	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		}
		return jobs[i].ID > jobs[j].ID
	})
}

func containsFold(field *string, needle string) bool {
	if needle == "" {
		return true
	}
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), strings.ToLower(needle))
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}
