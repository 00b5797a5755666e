package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/internship-platform/internal/domain"
	apperrors "github.com/spec-kit/internship-platform/pkg/util"
)

const msgForbidden = "Accès interdit. Permissions insuffisantes."

// RequireRole ensures the principal carries one of the allowed roles.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized(msgNotAuthenticated)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden(msgForbidden)
		}
		return c.Next()
	}
}

// RequireAdmin gates the contact inbox routes.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
