package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pureiot/support-api/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Update  *handlers.UpdateHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Banner)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Post("/submit-ticket", cfg.Tickets.SubmitTicket)
	api.Get("/tickets/:userId", cfg.Tickets.ListTickets)

	app.Get("/update/:ticketId", cfg.Update.RenderForm)
	app.Post("/update/:ticketId", cfg.Update.SubmitUpdate)
}
