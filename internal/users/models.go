package users

import "time"

// Role is the closed set of authorization roles a local user can hold.
// The storage layer may hand back arbitrary strings; ParseRole normalizes
// anything unrecognized down to RoleUser rather than propagating it.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User mirrors an external identity inside this service.
//
// Invariants:
// - exactly one row per ExternalID (unique constraint in storage)
// - Role changes only by direct administrative action, never by this service
// - Email is written once at provisioning time and never resynced
type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}
