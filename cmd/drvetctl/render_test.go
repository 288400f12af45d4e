package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/drvet-api/internal/application/dto"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
)

func TestRenderStock(t *testing.T) {
	var buf bytes.Buffer
	err := renderStock(&buf, []*entity.StockItem{
		{ID: "a", ProductName: "Holstein Friesian", Category: entity.CategoryCattle, Quantity: 50, Price: decimal.NewFromInt(2500), Unit: entity.UnitStraw},
		{ID: "c", ProductName: "Boer", Category: entity.CategoryGoat, Quantity: 5, Price: decimal.NewFromInt(30), Unit: entity.UnitStraw},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Holstein Friesian")
	assert.Contains(t, out, "2,500.00")
	assert.Contains(t, out, "yes")
}

func TestRenderOrders(t *testing.T) {
	var buf bytes.Buffer
	err := renderOrders(&buf, []*entity.Order{{
		OrderNumber:  "ORD-1700000000000",
		CustomerName: "Green Valley Farm",
		Lines:        []entity.OrderLine{{StockID: "a", Quantity: 1}},
		TotalAmount:  decimal.NewFromInt(350),
		Status:       entity.OrderStatusPending,
		CreatedAt:    time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ORD-1700000000000")
	assert.Contains(t, out, "350.00")
	assert.Contains(t, out, "2026-03-01 10:30")
}

func TestRenderDashboard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderDashboard(&buf, &dto.DashboardStatsDTO{
		TotalCustomers: 4,
		TotalRevenue:   decimal.RequireFromString("12345.5"),
	}))
	assert.Contains(t, buf.String(), "Rs. 12,345.50")
}
