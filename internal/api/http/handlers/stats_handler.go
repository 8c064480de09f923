package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/melhem/content-hub/internal/api/dto"
	"github.com/melhem/content-hub/internal/auth"
	"github.com/melhem/content-hub/internal/service"
	apperrors "github.com/melhem/content-hub/pkg/util"
)

// StatsHandler exposes dashboard counters.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// Dashboard handles GET /stats/dashboard.
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	return c.JSON(fiber.Map{
		"data": dto.FromDashboardStats(h.stats.Dashboard(principal.Viewer)),
	})
}
