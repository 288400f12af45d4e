package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard.
// Se recalcula en cada petición; no hay caché.
type DashboardStatsDTO struct {
	TotalCustomers  int             `json:"totalCustomers"`
	TotalOrders     int             `json:"totalOrders"`
	PendingOrders   int             `json:"pendingOrders"`
	CompletedOrders int             `json:"completedOrders"`
	TotalStockItems int             `json:"totalStockItems"`
	LowStockItems   int             `json:"lowStockItems"` // quantity < 10
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`  // Σ totalAmount de órdenes completed
	RecentOrders    []OrderResponse `json:"recentOrders"`  // últimas 5, la más reciente primero
}
