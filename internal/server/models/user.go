// Package models defines server-side data models persisted in the database.
package models

import "time"

// Role is the single access class attached to an identity.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// DefaultRole is assigned at registration.
const DefaultRole = RoleViewer

// IsValid reports whether r is one of the predefined roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// ParseRole converts s into a Role, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

// User is a registered identity. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Profile is the public projection of a User.
type Profile struct {
	ID    int64
	Email string
	Role  Role
}

// Profile strips the password hash.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Role: u.Role}
}
