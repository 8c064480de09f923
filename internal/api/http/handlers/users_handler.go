package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/melhem/content-hub/internal/api/dto"
	"github.com/melhem/content-hub/internal/auth"
	"github.com/melhem/content-hub/internal/domain"
	"github.com/melhem/content-hub/internal/service"
	"github.com/melhem/content-hub/internal/store"
	apperrors "github.com/melhem/content-hub/pkg/util"
)

// UsersHandler exposes registration, login and profile endpoints.
type UsersHandler struct {
	auth     *service.AuthService
	profiles *store.Store
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, profiles *store.Store) *UsersHandler {
	return &UsersHandler{auth: authService, profiles: profiles}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, token, exp, err := h.auth.RegisterDoctor(c.Context(), service.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Degree:    req.Degree,
		Specialty: req.Specialty,
		Whatsapp:  req.Whatsapp,
		Instagram: req.Instagram,
		Website:   req.Website,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AuthResponse{
			User:      h.profileResponse(account.ID, account.Profile()),
			Access:    token,
			ExpiresAt: exp,
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{
			User:      h.profileResponse(account.ID, account.Profile()),
			Access:    token,
			ExpiresAt: exp,
		},
	})
}

// Me handles GET /me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	return c.JSON(fiber.Map{
		"data": h.profileResponse(principal.Account.ID, principal.Viewer),
	})
}

// UpdateProfile handles PUT /me.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.auth.UpdateProfile(c.Context(), principal.Account.ID, service.ProfileInput{
		Name:      req.Name,
		Degree:    req.Degree,
		Specialty: req.Specialty,
		Whatsapp:  req.Whatsapp,
		Instagram: req.Instagram,
		Website:   req.Website,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": h.profileResponse(account.ID, account.Profile()),
	})
}

// ChangePassword handles POST /auth/password/change.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), principal.Account.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"changed": true},
	})
}

// RequestPasswordReset handles POST /auth/password/reset. The response never
// reveals whether the email exists.
func (h *UsersHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if _, err := h.auth.RequestPasswordReset(c.Context(), req.Email); err != nil {
		if !apperrors.IsCode(err, "NOT_FOUND") {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "if the account exists, a reset link has been sent"},
	})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *UsersHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and new_password required", nil)
	}

	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"reset": true},
	})
}

// profileResponse prefers the store profile so cases_count reflects reality.
func (h *UsersHandler) profileResponse(accountID string, fallback domain.User) dto.UserResponse {
	if profile, ok := h.profiles.UserByID(accountID); ok {
		if profile.Email == "" {
			profile.Email = fallback.Email
		}
		return dto.FromUser(profile)
	}
	return dto.FromUser(fallback)
}
