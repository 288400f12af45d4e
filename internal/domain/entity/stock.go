package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de especie para los productos en stock.
const (
	CategoryCattle  = "Cattle"
	CategoryBuffalo = "Buffalo"
	CategoryGoat    = "Goat"
	CategorySheep   = "Sheep"
)

// Unidades de medida admitidas.
const (
	UnitStraw = "straw"
	UnitVial  = "vial"
	UnitDose  = "dose"
)

// LowStockThreshold: un ítem con Quantity por debajo de este valor se considera stock bajo.
const LowStockThreshold = 10

// StockItem representa una unidad vendible del inventario (ej. un lote de pajillas de semen).
// Quantity nunca debe ser negativa; solo el procesador de órdenes la descuenta.
type StockItem struct {
	ID          string
	ProductName string
	Category    string
	Quantity    int
	Price       decimal.Decimal // precio unitario de venta
	Unit        string
	BatchNumber string
	ExpiryDate  string // YYYY-MM-DD, vacío si no aplica
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el ítem está por debajo del umbral fijo.
func (s StockItem) IsLowStock() bool {
	return s.Quantity < LowStockThreshold
}

// ValidCategory indica si c es una categoría conocida.
func ValidCategory(c string) bool {
	switch c {
	case CategoryCattle, CategoryBuffalo, CategoryGoat, CategorySheep:
		return true
	}
	return false
}

// ValidUnit indica si u es una unidad conocida.
func ValidUnit(u string) bool {
	switch u {
	case UnitStraw, UnitVial, UnitDose:
		return true
	}
	return false
}
