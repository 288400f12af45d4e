package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/jhoicas/drvet-api/internal/application/dto"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/pkg/money"
)

func renderStock(w io.Writer, items []*entity.StockItem) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Product", "Category", "Qty", "Unit", "Price", "Batch", "Expiry", "Low")
	for _, s := range items {
		low := ""
		if s.IsLowStock() {
			low = "yes"
		}
		if err := table.Append(s.ID, s.ProductName, s.Category, strconv.Itoa(s.Quantity), s.Unit,
			money.Format(s.Price), s.BatchNumber, s.ExpiryDate, low); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderOrders(w io.Writer, list []*entity.Order) error {
	table := tablewriter.NewWriter(w)
	table.Header("Number", "Customer", "Lines", "Total", "Status", "Created")
	for _, o := range list {
		if err := table.Append(o.OrderNumber, o.CustomerName, strconv.Itoa(len(o.Lines)),
			money.Format(o.TotalAmount), o.Status, o.CreatedAt.Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderDashboard(w io.Writer, stats *dto.DashboardStatsDTO) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Customers", strconv.Itoa(stats.TotalCustomers)},
		{"Orders", strconv.Itoa(stats.TotalOrders)},
		{"Pending", strconv.Itoa(stats.PendingOrders)},
		{"Completed", strconv.Itoa(stats.CompletedOrders)},
		{"Stock items", strconv.Itoa(stats.TotalStockItems)},
		{"Low stock", strconv.Itoa(stats.LowStockItems)},
		{"Revenue", money.WithPrefix(stats.TotalRevenue)},
	}
	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return err
		}
	}
	return table.Render()
}
