package repository

import (
	"context"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
)

// StockRepository define el puerto de persistencia para la colección de stock.
// GetByID devuelve (nil, nil) si el ítem no existe.
type StockRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	// List devuelve la colección completa en orden de inserción (read(collection)).
	List(ctx context.Context) ([]*entity.StockItem, error)
	Update(ctx context.Context, item *entity.StockItem) error
	// UpdateDetails persiste todo salvo Quantity, que solo cambia el ledger o un Update
	// explícito. Deja en item.Quantity la cantidad vigente.
	UpdateDetails(ctx context.Context, item *entity.StockItem) error
	Delete(ctx context.Context, id string) error

	// ListForUpdate lee la colección bloqueándola contra escrituras concurrentes
	// hasta el fin de la transacción. Fuera de una transacción equivale a List.
	ListForUpdate(ctx context.Context) ([]*entity.StockItem, error)
	// ReplaceAll reemplaza la colección completa (write(collection, full contents)).
	ReplaceAll(ctx context.Context, items []*entity.StockItem) error
}
