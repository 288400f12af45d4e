package entity

import "github.com/shopspring/decimal"

// OrderLine representa una línea (stockId, quantity) de una orden.
// ProductName y UnitPrice se capturan al reservar el stock.
type OrderLine struct {
	StockID     string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal devuelve Quantity × UnitPrice.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
