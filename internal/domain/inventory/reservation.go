// Package inventory contiene los servicios de dominio del inventario (sin I/O).
package inventory

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/drvet-api/internal/domain"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
)

// Reservation resultado de reservar un lote de líneas contra la colección de stock.
type Reservation struct {
	// Stock es la colección completa con los descuentos aplicados (copias, lista para persistir).
	Stock []*entity.StockItem
	// UnitPrices precio unitario por línea, capturado en el momento de la reserva.
	UnitPrices []decimal.Decimal
	// Items ítem actualizado por línea (apunta dentro de Stock).
	Items []*entity.StockItem
}

// Reserve valida todas las líneas contra stock y, solo si todas son satisfacibles,
// devuelve la colección con las cantidades descontadas. No modifica stock.
//
// Las líneas repetidas del mismo stockId se acumulan contra el mismo ítem.
// Falla con NotFoundError si un stockId no existe y con InsufficientStockError
// nombrando el primer producto cuya demanda acumulada supera lo disponible.
func Reserve(stock []*entity.StockItem, lines []entity.OrderLine, now time.Time) (*Reservation, error) {
	copies, byID := cloneIndex(stock)

	requested := make(map[string]int, len(lines))
	items := make([]*entity.StockItem, len(lines))
	for i, line := range lines {
		item, ok := byID[line.StockID]
		if !ok {
			return nil, domain.NewNotFoundError("stock item", line.StockID)
		}
		if line.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity", "must be a positive integer")
		}
		// requested[id] <= item.Quantity siempre, así que la resta no desborda.
		already := requested[line.StockID]
		if line.Quantity > item.Quantity-already {
			return nil, &domain.InsufficientStockError{
				StockID:     item.ID,
				ProductName: item.ProductName,
				Requested:   saturatingAdd(already, line.Quantity),
				Available:   item.Quantity,
			}
		}
		requested[line.StockID] = already + line.Quantity
		items[i] = item
	}

	// Todo el lote es válido: aplicar descuentos.
	prices := make([]decimal.Decimal, len(lines))
	for i, item := range items {
		prices[i] = item.Price
	}
	for id, qty := range requested {
		item := byID[id]
		item.Quantity -= qty
		item.UpdatedAt = now
	}
	return &Reservation{Stock: copies, UnitPrices: prices, Items: items}, nil
}

// Release devuelve al stock las cantidades de lines (reposición al cancelar).
// Los stockId que ya no existen se ignoran. No modifica stock.
func Release(stock []*entity.StockItem, lines []entity.OrderLine, now time.Time) []*entity.StockItem {
	copies, byID := cloneIndex(stock)
	for _, line := range lines {
		if item, ok := byID[line.StockID]; ok {
			item.Quantity += line.Quantity
			item.UpdatedAt = now
		}
	}
	return copies
}

// Total calcula Σ quantity × unitPrice.
func Total(lines []entity.OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func cloneIndex(stock []*entity.StockItem) ([]*entity.StockItem, map[string]*entity.StockItem) {
	copies := make([]*entity.StockItem, len(stock))
	byID := make(map[string]*entity.StockItem, len(stock))
	for i, s := range stock {
		c := *s
		copies[i] = &c
		byID[c.ID] = &c
	}
	return copies, byID
}
