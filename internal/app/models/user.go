package models

import "time"

// Role identifies what a user is allowed to do in the portal.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
)

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleAlumni:
		return true
	}
	return false
}

// User represents one principal. UserID is the institutional code
// (roll number or employee code), email is the login identity.
type User struct {
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	Name           string    `json:"name"`
	Phone          *string   `json:"phone,omitempty"`
	Department     *string   `json:"department,omitempty"`
	CollegeName    *string   `json:"college_name,omitempty"`
	GraduationYear *int      `json:"graduation_year,omitempty"`
	CurrentCompany *string   `json:"current_company,omitempty"`
	Designation    *string   `json:"designation,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// RefreshToken is an opaque server-side token exchanged for new access tokens.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}
