package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ticketwiz/ticketwiz/internal/api/http/handlers"
	"github.com/ticketwiz/ticketwiz/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.Middleware
	PublicLimiter  *PublicRateLimiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register-saas", cfg.Auth.RegisterSaaS)
	authGroup.Post("/login", cfg.Auth.Login)

	tickets := api.Group("/tickets")
	tickets.Post("/public/:orgId", cfg.PublicLimiter.Handle, cfg.Tickets.CreatePublic)

	protected := tickets.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/create", cfg.Tickets.Create)
	protected.Get("/", cfg.Tickets.List)
	protected.Put("/:id/status", cfg.Tickets.UpdateStatus)
}
