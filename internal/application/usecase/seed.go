package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

// DefaultCatalog catálogo inicial que se carga cuando la colección de stock está vacía.
func DefaultCatalog(now time.Time) []*entity.StockItem {
	item := func(name, category string, qty int, price int64, desc, batch, expiry string) *entity.StockItem {
		return &entity.StockItem{
			ID:          uuid.New().String(),
			ProductName: name,
			Category:    category,
			Quantity:    qty,
			Price:       decimal.NewFromInt(price),
			Unit:        entity.UnitStraw,
			BatchNumber: batch,
			ExpiryDate:  expiry,
			Description: desc,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	return []*entity.StockItem{
		item("Premium Bull Semen - Holstein", entity.CategoryCattle, 50, 2500, "High quality Holstein bull semen", "BS-2024-001", "2025-12-31"),
		item("Premium Bull Semen - Jersey", entity.CategoryCattle, 30, 2200, "High quality Jersey bull semen", "BS-2024-002", "2025-11-30"),
		item("Buffalo Semen - Murrah", entity.CategoryBuffalo, 40, 1800, "Premium Murrah buffalo semen", "BS-2024-003", "2025-10-31"),
	}
}

// SeedDefaultStock carga DefaultCatalog si no hay ningún ítem. Devuelve cuántos creó.
func SeedDefaultStock(ctx context.Context, repo repository.StockRepository) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	catalog := DefaultCatalog(time.Now())
	for _, it := range catalog {
		if err := repo.Create(ctx, it); err != nil {
			return 0, err
		}
	}
	return len(catalog), nil
}
