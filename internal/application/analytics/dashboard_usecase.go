// Package analytics contiene el agregador del dashboard: contadores de solo lectura
// recalculados en cada consulta.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/drvet-api/internal/application/dto"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

const dashboardRecentOrders = 5 // órdenes en el widget "recientes"

// DashboardUseCase calcula las estadísticas del dashboard leyendo las tres colecciones.
// No guarda estado ni caché: dos llamadas sin escrituras intermedias devuelven lo mismo.
type DashboardUseCase struct {
	customerRepo repository.CustomerRepository
	stockRepo    repository.StockRepository
	orderRepo    repository.OrderRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	customerRepo repository.CustomerRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
) *DashboardUseCase {
	return &DashboardUseCase{customerRepo: customerRepo, stockRepo: stockRepo, orderRepo: orderRepo}
}

// ComputeStats construye el DashboardStatsDTO.
//
// Tres lecturas en paralelo (clientes, stock, órdenes); los totales se calculan en memoria.
func (uc *DashboardUseCase) ComputeStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	type customersResult struct {
		list []*entity.Customer
		err  error
	}
	type stockResult struct {
		list []*entity.StockItem
		err  error
	}
	type ordersResult struct {
		list []*entity.Order
		err  error
	}

	customersCh := make(chan customersResult, 1)
	stockCh := make(chan stockResult, 1)
	ordersCh := make(chan ordersResult, 1)

	go func() {
		list, err := uc.customerRepo.List(ctx)
		customersCh <- customersResult{list, err}
	}()
	go func() {
		list, err := uc.stockRepo.List(ctx)
		stockCh <- stockResult{list, err}
	}()
	go func() {
		list, err := uc.orderRepo.List(ctx)
		ordersCh <- ordersResult{list, err}
	}()

	customers := <-customersCh
	stock := <-stockCh
	orders := <-ordersCh

	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", customers.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: stock: %w", stock.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes: %w", orders.err)
	}

	stats := &dto.DashboardStatsDTO{
		TotalCustomers:  len(customers.list),
		TotalOrders:     len(orders.list),
		TotalStockItems: len(stock.list),
		TotalRevenue:    decimal.Zero,
	}
	for _, s := range stock.list {
		if s.IsLowStock() {
			stats.LowStockItems++
		}
	}
	for _, o := range orders.list {
		switch o.Status {
		case entity.OrderStatusPending:
			stats.PendingOrders++
		case entity.OrderStatusCompleted:
			stats.CompletedOrders++
			stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		}
	}
	stats.RecentOrders = dto.FromOrders(recent(orders.list, dashboardRecentOrders))
	return stats, nil
}

// recent devuelve las últimas n órdenes en orden de inserción, la más reciente primero.
func recent(list []*entity.Order, n int) []*entity.Order {
	start := max(len(list)-n, 0)
	out := make([]*entity.Order, 0, len(list)-start)
	for i := len(list) - 1; i >= start; i-- {
		out = append(out, list[i])
	}
	return out
}
