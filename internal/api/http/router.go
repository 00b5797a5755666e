package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/internship-platform/internal/api/http/handlers"
	"github.com/spec-kit/internship-platform/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Contact        *handlers.ContactHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	contact := api.Group("/contact")
	if cfg.RateLimiter != nil {
		contact.Post("/", cfg.RateLimiter, cfg.Contact.Submit)
	} else {
		contact.Post("/", cfg.Contact.Submit)
	}

	adminOnly := contact.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	adminOnly.Get("/", cfg.Contact.List)
	adminOnly.Get("/:id", cfg.Contact.Get)
	adminOnly.Patch("/:id", cfg.Contact.Update)
	adminOnly.Post("/:id/reply", cfg.Contact.Reply)
	adminOnly.Delete("/:id", cfg.Contact.Delete)
}
