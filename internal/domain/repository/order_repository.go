package repository

import (
	"context"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Create es la única forma de insertar; la usa el procesador de órdenes dentro de su transacción.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve (nil, nil) si la orden no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// List devuelve todas las órdenes en orden de inserción.
	List(ctx context.Context) ([]*entity.Order, error)
	// Update persiste Status, Notes y UpdatedAt; las líneas no se tocan.
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}
