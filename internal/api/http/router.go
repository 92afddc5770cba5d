package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheTimMir/dnlit-quest-bot/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Teams   *handlers.TeamsHandler
	Metrics *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Stats)

	api := app.Group("/api")
	api.Get("/teams", cfg.Teams.List)
	api.Get("/teams/:code", cfg.Teams.Get)
}
