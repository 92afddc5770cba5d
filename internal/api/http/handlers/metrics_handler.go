package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheTimMir/dnlit-quest-bot/internal/observability"
)

// MetricsHandler exposes the in-memory counters.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler returns a new handler instance.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Stats returns a snapshot of all counters.
func (h *MetricsHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Stats())
}
