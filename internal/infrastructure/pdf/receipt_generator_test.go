package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/infrastructure/pdf"
)

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:           "o1",
		OrderNumber:  "ORD-1714557600000",
		CustomerID:   "c1",
		CustomerName: "Green Valley Farm",
		Lines: []entity.OrderLine{
			{StockID: "a", ProductName: "Premium Bull Semen - Holstein", Quantity: 2, UnitPrice: decimal.NewFromInt(2500)},
			{StockID: "b", Quantity: 1, UnitPrice: decimal.NewFromInt(1800)},
		},
		TotalAmount: decimal.NewFromInt(6800),
		Status:      entity.OrderStatusPending,
		CreatedAt:   time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateOrderReceipt(t *testing.T) {
	gen := pdf.NewReceiptGenerator("")
	customer := &entity.Customer{ID: "c1", Name: "Green Valley Farm", Phone: "555-0101", City: "Pune"}

	doc, err := gen.GenerateOrderReceipt(context.Background(), sampleOrder(), customer)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "no es un PDF")
}

func TestGenerateOrderReceipt_ClienteBorrado(t *testing.T) {
	doc, err := pdf.NewReceiptGenerator("DRVET").GenerateOrderReceipt(context.Background(), sampleOrder(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
