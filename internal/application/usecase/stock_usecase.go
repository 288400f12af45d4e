package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/drvet-api/internal/application/dto"
	"github.com/jhoicas/drvet-api/internal/domain"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

// StockUseCase casos de uso CRUD para ítems de stock. Las cantidades se editan aquí
// (reabastecimiento manual) o las descuenta el procesador de órdenes.
type StockUseCase struct {
	repo repository.StockRepository
	now  func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo, now: time.Now}
}

// Create crea un ítem. productName, category y unit son obligatorios.
func (uc *StockUseCase) Create(ctx context.Context, in dto.StockItemRequest) (*dto.StockItemResponse, error) {
	now := uc.now()
	item := &entity.StockItem{ID: uuid.New().String(), Price: decimal.Zero, CreatedAt: now, UpdatedAt: now}
	applyStock(item, in)
	if err := validateStock(item); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := dto.FromStockItem(item)
	return &out, nil
}

// GetByID obtiene un ítem; NotFoundError si no existe.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.StockItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NewNotFoundError("stock item", id)
	}
	out := dto.FromStockItem(item)
	return &out, nil
}

// List lista el stock en orden de alta.
func (uc *StockUseCase) List(ctx context.Context) ([]dto.StockItemResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromStockItem(s))
	}
	return out, nil
}

// Update mezcla los campos no nil sobre el ítem existente y vuelve a validar.
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.StockItemRequest) (*dto.StockItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NewNotFoundError("stock item", id)
	}
	applyStock(item, in)
	if err := validateStock(item); err != nil {
		return nil, err
	}
	item.UpdatedAt = uc.now()
	// Sin quantity en el body no se reescribe: un descuento concurrente del ledger se conserva.
	save := uc.repo.UpdateDetails
	if in.Quantity != nil {
		save = uc.repo.Update
	}
	if err := save(ctx, item); err != nil {
		return nil, err
	}
	out := dto.FromStockItem(item)
	return &out, nil
}

// Delete elimina el ítem. Las órdenes existentes conservan productName y unitPrice.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// LowStock devuelve los ítems por debajo del umbral.
func (uc *StockUseCase) LowStock(ctx context.Context) ([]*entity.StockItem, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.StockItem, 0)
	for _, s := range list {
		if s.IsLowStock() {
			out = append(out, s)
		}
	}
	return out, nil
}

func applyStock(s *entity.StockItem, in dto.StockItemRequest) {
	if in.ProductName != nil {
		s.ProductName = strings.TrimSpace(*in.ProductName)
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.Quantity != nil {
		s.Quantity = *in.Quantity
	}
	if in.Price != nil {
		s.Price = *in.Price
	}
	if in.Unit != nil {
		s.Unit = *in.Unit
	}
	if in.BatchNumber != nil {
		s.BatchNumber = strings.TrimSpace(*in.BatchNumber)
	}
	if in.ExpiryDate != nil {
		s.ExpiryDate = strings.TrimSpace(*in.ExpiryDate)
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
}

func validateStock(s *entity.StockItem) error {
	switch {
	case s.ProductName == "":
		return domain.NewValidationError("productName", "is required")
	case !entity.ValidCategory(s.Category):
		return domain.NewValidationError("category", fmt.Sprintf("unknown category %q", s.Category))
	case !entity.ValidUnit(s.Unit):
		return domain.NewValidationError("unit", fmt.Sprintf("unknown unit %q", s.Unit))
	case s.Quantity < 0:
		return domain.NewValidationError("quantity", "cannot be negative")
	case s.Price.IsNegative():
		return domain.NewValidationError("price", "cannot be negative")
	}
	if s.ExpiryDate != "" {
		if _, err := time.Parse(time.DateOnly, s.ExpiryDate); err != nil {
			return domain.NewValidationError("expiryDate", "must be YYYY-MM-DD")
		}
	}
	return nil
}
