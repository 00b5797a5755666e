package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/internship-platform/internal/api/dto"
	"github.com/spec-kit/internship-platform/internal/service"
	apperrors "github.com/spec-kit/internship-platform/pkg/util"
)

// AuthHandler exposes the login endpoint backing the admin session gate.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Requête invalide")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Email et mot de passe requis")
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"ok": true,
		"user": dto.UserResponse{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
		},
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}
