package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
// Campos extra que envía el UI (totalAmount, customerName, status) se ignoran: los calcula el servidor.
type CreateOrderRequest struct {
	CustomerID string             `json:"customerId"`
	Items      []OrderItemRequest `json:"items"`
	Notes      string             `json:"notes,omitempty"`
}

// OrderItemRequest línea de la orden.
type OrderItemRequest struct {
	StockID  string `json:"stockId"`
	Quantity int    `json:"quantity"`
}

// UpdateOrderRequest body para PUT /api/orders/:id. Solo status y notes son modificables.
type UpdateOrderRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// OrderResponse orden con sus líneas.
type OrderResponse struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"orderNumber"`
	CustomerID   string              `json:"customerId"`
	CustomerName string              `json:"customerName"`
	Items        []OrderLineResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	Status       string              `json:"status"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    *time.Time          `json:"updatedAt,omitempty"`
}

// OrderLineResponse línea de orden en respuestas.
type OrderLineResponse struct {
	StockID     string          `json:"stockId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
