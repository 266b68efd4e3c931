package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the closed set of account roles. The zero value is not a valid role.
type Role uint8

const (
	RoleAdmin Role = iota + 1
	RoleCandidate
)

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "candidate":
		return RoleCandidate, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleCandidate:
		return "candidate"
	default:
		return "unknown"
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCandidate:
		return true
	default:
		return false
	}
}

// CanManageJobs reports whether the role may author, edit and delete postings
// and review their applicants.
func (r Role) CanManageJobs() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleCandidate:
		return false
	default:
		return false
	}
}

// CanTrackJobs reports whether the role may apply to and bookmark postings.
func (r Role) CanTrackJobs() bool {
	switch r {
	case RoleAdmin:
		return false
	case RoleCandidate:
		return true
	default:
		return false
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", r)
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
