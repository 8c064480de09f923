package dto

import (
	"time"

	"github.com/melhem/content-hub/internal/domain"
)

// RegisterRequest payload for doctor registration.
type RegisterRequest struct {
	Name      string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Degree    string `json:"degree"`
	Specialty string `json:"specialty"`
	Whatsapp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	Website   string `json:"website"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for the explicit profile-edit action.
type UpdateProfileRequest struct {
	Name      string `json:"full_name"`
	Degree    string `json:"degree"`
	Specialty string `json:"specialty"`
	Whatsapp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	Website   string `json:"website"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// AuthResponse wraps a token grant.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Access    string       `json:"access"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// UserResponse is the wire shape of a profile.
type UserResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Role       domain.UserRole `json:"role"`
	Degree     string          `json:"degree,omitempty"`
	Specialty  string          `json:"specialty,omitempty"`
	Whatsapp   string          `json:"whatsapp,omitempty"`
	Email      string          `json:"email,omitempty"`
	Instagram  string          `json:"instagram,omitempty"`
	Website    string          `json:"website,omitempty"`
	CasesCount int             `json:"cases_count"`
}

// FromUser maps a profile onto its wire shape.
func FromUser(u domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Role:       u.Role,
		Degree:     u.Degree,
		Specialty:  u.Specialty,
		Whatsapp:   u.Whatsapp,
		Email:      u.Email,
		Instagram:  u.Instagram,
		Website:    u.Website,
		CasesCount: u.CasesCount,
	}
}
