package dto

import "github.com/placenet/portal/internal/app/models"

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the token pair and the authenticated user.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"`
	User         *models.User `json:"user"`
}

// RefreshRequest is the refresh-token exchange payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// MeResponse wraps the current user's profile.
type MeResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

// UpdateProfileRequest is the self-service profile update payload.
type UpdateProfileRequest struct {
	Name           string  `json:"name" binding:"required"`
	Phone          *string `json:"phone"`
	Department     *string `json:"department"`
	CollegeName    *string `json:"college_name"`
	GraduationYear *int    `json:"graduation_year"`
	CurrentCompany *string `json:"current_company"`
	Designation    *string `json:"designation"`
	Bio            *string `json:"bio"`
}

// ResetPasswordRequest is the authenticated password-change payload.
type ResetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
