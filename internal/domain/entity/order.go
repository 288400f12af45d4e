package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus indica si s es un estado conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order representa la cabecera de una orden de cliente.
// Lines y TotalAmount son inmutables una vez creada; solo cambian Status, Notes y UpdatedAt.
type Order struct {
	ID           string
	OrderNumber  string // ORD-<millis>
	CustomerID   string
	CustomerName string // copia del nombre al momento de crear la orden
	Lines        []OrderLine
	TotalAmount  decimal.Decimal
	Status       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone devuelve una copia con su propio slice de líneas.
func (o Order) Clone() Order {
	o.Lines = append([]OrderLine(nil), o.Lines...)
	return o
}
