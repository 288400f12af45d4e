package orders

import (
	"context"

	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del Record Store, pasando
// repositorios atados a esa transacción. Si fn retorna error no se persiste nada:
// la escritura del stock y la de la orden son una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
