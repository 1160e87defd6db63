package model

import "time"

// Role is the marketplace role of a profile.
type Role string

const (
	RoleResident        Role = "resident"
	RoleServiceProvider Role = "service_provider"
	RoleAdmin           Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleResident, RoleServiceProvider, RoleAdmin:
		return true
	}
	return false
}

// Profile is the public identity of a signed-up user.
// Profiles are created on sign-up; only admins mutate Suspended.
type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	Verified  bool      `json:"verified"`
	Suspended bool      `json:"suspended"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the profile may use the admin dashboard.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Credential is the sign-in secret stored for a profile.
// It never leaves the service layer.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Owner is the contact summary of a listing's owner, joined onto listing reads.
type Owner struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}
