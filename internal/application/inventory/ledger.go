package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/drvet-api/internal/domain"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/inventory"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

// StockLedger responde si hay cantidad disponible y calcula los descuentos de stock
// de forma atómica (todo el lote o nada).
type StockLedger struct {
	stockRepo repository.StockRepository
}

// NewStockLedger construye el ledger. stockRepo se usa solo para consultas fuera de transacción.
func NewStockLedger(stockRepo repository.StockRepository) *StockLedger {
	return &StockLedger{stockRepo: stockRepo}
}

// GetAvailable devuelve la cantidad disponible de un ítem; NotFoundError si no existe.
func (l *StockLedger) GetAvailable(ctx context.Context, stockID string) (int, error) {
	item, err := l.stockRepo.GetByID(ctx, stockID)
	if err != nil {
		return 0, fmt.Errorf("get stock item: %w", err)
	}
	if item == nil {
		return 0, domain.NewNotFoundError("stock item", stockID)
	}
	return item.Quantity, nil
}

// ReserveAndDecrement lee la colección de stock con bloqueo usando stockRepo (el de la
// transacción del caller) y calcula los descuentos en memoria.
// No escribe nada: el caller persiste Reservation.Stock junto con la orden.
// Propaga NotFoundError e InsufficientStockError sin envolver.
func (l *StockLedger) ReserveAndDecrement(
	ctx context.Context,
	stockRepo repository.StockRepository,
	lines []entity.OrderLine,
	now time.Time,
) (*inventory.Reservation, error) {
	stock, err := stockRepo.ListForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stock: %w", err)
	}
	return inventory.Reserve(stock, lines, now)
}

// Release calcula la colección con las cantidades de lines devueltas (reposición).
// Como ReserveAndDecrement, no escribe.
func (l *StockLedger) Release(
	ctx context.Context,
	stockRepo repository.StockRepository,
	lines []entity.OrderLine,
	now time.Time,
) ([]*entity.StockItem, error) {
	stock, err := stockRepo.ListForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stock: %w", err)
	}
	return inventory.Release(stock, lines, now), nil
}
