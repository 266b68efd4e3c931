package domain

type CtxKey string

const (
	KeyCaller    CtxKey = "Caller"
	KeyRequestID CtxKey = "RequestID"
)

// Caller is the verified identity behind a request.
type Caller struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) IsCandidate() bool {
	return c.Role == RoleCandidate
}
