package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/drvet-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats GET /api/dashboard
//
// Respuesta: DashboardStatsDTO (totalCustomers, totalOrders, pendingOrders, completedOrders,
// totalStockItems, lowStockItems, totalRevenue, recentOrders[5]). Se recalcula en cada llamada.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.ComputeStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
