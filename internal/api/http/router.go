package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/melhem/content-hub/internal/api/http/handlers"
	"github.com/melhem/content-hub/internal/auth"
	"github.com/melhem/content-hub/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Cases          *handlers.CasesHandler
	Notifications  *handlers.NotificationsHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/auth/password/change", cfg.Users.ChangePassword)
	protected.Get("/me", cfg.Users.Me)
	protected.Put("/me", cfg.Users.UpdateProfile)

	cases := protected.Group("/cases")
	cases.Post("", auth.RequireRole(domain.RoleDoctor), cfg.Cases.Create)
	cases.Get("", cfg.Cases.List)
	cases.Get("/:id", cfg.Cases.Get)
	cases.Patch("/:id/status", auth.RequireRole(domain.RoleMarketing), cfg.Cases.UpdateStatus)
	cases.Post("/:id/publish", auth.RequireRole(domain.RoleMarketing), cfg.Cases.Publish)
	cases.Post("/:id/content", auth.RequireRole(domain.RoleMarketing), cfg.Cases.GenerateContent)

	notifications := protected.Group("/notifications")
	notifications.Get("", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Post("/:id/read", cfg.Notifications.MarkOneRead)

	protected.Get("/stats/dashboard", cfg.Stats.Dashboard)
}
