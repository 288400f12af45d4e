package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/drvet-api/internal/application/orders"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

var _ orders.TxRunner = (*TxRunner)(nil)

// orderTxOptions: el LOCK TABLE de ListForUpdate ya serializa las órdenes, READ COMMITTED alcanza.
var orderTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}

// TxRunner ejecuta el callback del procesador de órdenes dentro de una transacción.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run entrega a fn repositorios de stock y órdenes atados a la misma tx. Commit si fn
// devuelve nil; rollback en cualquier otro caso (los errores de fn se propagan sin envolver).
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return pgx.BeginTxFunc(ctx, r.pool, orderTxOptions, func(tx pgx.Tx) error {
		return fn(newTxStockRepository(tx), newTxOrderRepository(tx))
	})
}
