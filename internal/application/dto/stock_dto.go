package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItemRequest body para POST y PUT /api/stock.
// En PUT los campos nil no se modifican.
type StockItemRequest struct {
	ProductName *string          `json:"productName"`
	Category    *string          `json:"category"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	Unit        *string          `json:"unit"`
	BatchNumber *string          `json:"batchNumber"`
	ExpiryDate  *string          `json:"expiryDate"`
	Description *string          `json:"description"`
}

// StockItemResponse ítem de stock en respuestas.
type StockItemResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	BatchNumber string          `json:"batchNumber,omitempty"`
	ExpiryDate  string          `json:"expiryDate,omitempty"`
	Description string          `json:"description,omitempty"`
	LowStock    bool            `json:"lowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// AvailabilityResponse respuesta de GET /api/stock/:id/availability.
type AvailabilityResponse struct {
	StockID   string `json:"stockId"`
	Available int    `json:"available"`
}
