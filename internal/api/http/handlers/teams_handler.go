package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheTimMir/dnlit-quest-bot/internal/domain"
	"github.com/TheTimMir/dnlit-quest-bot/internal/registry"
	apperrors "github.com/TheTimMir/dnlit-quest-bot/pkg/util"
)

// TeamsHandler exposes a read-only roster view for the coordinator.
type TeamsHandler struct {
	registry *registry.Registry
}

// NewTeamsHandler returns a new handler instance.
func NewTeamsHandler(reg *registry.Registry) *TeamsHandler {
	return &TeamsHandler{registry: reg}
}

// List returns every team with its members, in team order.
func (h *TeamsHandler) List(c *fiber.Ctx) error {
	rosters := make([]domain.TeamRoster, 0)
	for _, code := range h.registry.Teams() {
		rosters = append(rosters, domain.TeamRoster{
			Code:    code,
			Members: h.registry.Members(code),
		})
	}
	return c.JSON(fiber.Map{"teams": rosters})
}

// Get returns one team's roster.
func (h *TeamsHandler) Get(c *fiber.Ctx) error {
	code := c.Params("code")
	for _, known := range h.registry.Teams() {
		if known == code {
			return c.JSON(domain.TeamRoster{
				Code:    code,
				Members: h.registry.Members(code),
			})
		}
	}
	return apperrors.NewNotFound("team")
}
