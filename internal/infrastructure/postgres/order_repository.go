package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/drvet-api/internal/domain"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository: cabecera en orders, líneas en order_lines.
type OrderRepo struct {
	q Querier
	// lock: GetByID toma FOR UPDATE sobre la cabecera (solo dentro de la tx de órdenes).
	lock bool
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// newTxOrderRepository repositorio atado a la tx de TxRunner. Dos cambios de estado
// concurrentes sobre la misma orden se serializan en la fila y el segundo ve el estado
// ya confirmado por el primero.
func newTxOrderRepository(tx pgx.Tx) *OrderRepo {
	return &OrderRepo{q: tx, lock: true}
}

const orderColumns = `id, order_number, customer_id, customer_name, total_amount, status, notes, created_at, updated_at`

// Create inserta cabecera y líneas en un batch. Debe ejecutarse dentro de la transacción
// que descuenta el stock.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.OrderNumber, o.CustomerID, o.CustomerName, o.TotalAmount, o.Status, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	for i, l := range o.Lines {
		batch.Queue(`
			INSERT INTO order_lines (order_id, line_no, stock_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, i+1, l.StockID, l.ProductName, l.Quantity, l.UnitPrice,
		)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if r.lock {
		query += ` FOR UPDATE`
	}
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	lines, err := r.lines(ctx, `WHERE order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines[o.ID]
	return o, nil
}

// List devuelve todas las órdenes en orden de inserción con sus líneas (dos consultas).
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	lines, err := r.lines(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, o := range out {
		o.Lines = lines[o.ID]
	}
	return out, nil
}

// Update persiste solo status, notes y updated_at.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("order", o.ID)
	}
	return nil
}

// Delete borra la orden (las líneas caen por ON DELETE CASCADE). No toca el stock.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *OrderRepo) lines(ctx context.Context, where string, args ...any) (map[string][]entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT order_id, stock_id, product_name, quantity, unit_price
		FROM order_lines `+where+`
		ORDER BY order_id, line_no`, args...)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.OrderLine)
	for rows.Next() {
		var orderID string
		var l entity.OrderLine
		if err := rows.Scan(&orderID, &l.StockID, &l.ProductName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		out[orderID] = append(out[orderID], l)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.TotalAmount, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
