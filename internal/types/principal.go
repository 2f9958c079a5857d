package types

import "github.com/google/uuid"

// Role labels for authenticated principals.
const (
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
	RoleSeeker    = "seeker"
)

// Principal is the acting identity extracted from a validated session token.
type Principal struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

// IsAdmin reports whether the principal carries the administrative role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
