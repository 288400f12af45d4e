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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q    Querier
	inTx bool
}

// NewStockRepository construye el adaptador de stock sobre el pool.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func newTxStockRepository(tx pgx.Tx) *StockRepo {
	return &StockRepo{q: tx, inTx: true}
}

const stockColumns = `id, product_name, category, quantity, price, unit, batch_number, expiry_date, description, created_at, updated_at`

func (r *StockRepo) Create(ctx context.Context, s *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ProductName, s.Category, s.Quantity, s.Price, s.Unit, s.BatchNumber, s.ExpiryDate, s.Description,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if verr := checkViolation(err); verr != nil {
			return verr
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	s, err := scanStock(r.q.QueryRow(ctx, `SELECT `+stockColumns+` FROM stock_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return s, nil
}

func (r *StockRepo) List(ctx context.Context) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockColumns+` FROM stock_items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.StockItem, 0)
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListForUpdate bloquea la tabla contra escrituras concurrentes hasta el fin de la transacción.
// SHARE ROW EXCLUSIVE se excluye a sí mismo, así que dos órdenes nunca leen el mismo stock a la vez;
// las lecturas normales no se bloquean.
func (r *StockRepo) ListForUpdate(ctx context.Context) ([]*entity.StockItem, error) {
	if r.inTx {
		if _, err := r.q.Exec(ctx, `LOCK TABLE stock_items IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return nil, fmt.Errorf("lock stock: %w", err)
		}
	}
	return r.List(ctx)
}

func (r *StockRepo) Update(ctx context.Context, s *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET product_name = $2, category = $3, quantity = $4, price = $5, unit = $6,
		    batch_number = $7, expiry_date = $8, description = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.ProductName, s.Category, s.Quantity, s.Price, s.Unit, s.BatchNumber, s.ExpiryDate, s.Description, s.UpdatedAt,
	)
	if err != nil {
		if verr := checkViolation(err); verr != nil {
			return verr
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("stock item", s.ID)
	}
	return nil
}

func (r *StockRepo) UpdateDetails(ctx context.Context, s *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET product_name = $2, category = $3, price = $4, unit = $5,
		    batch_number = $6, expiry_date = $7, description = $8, updated_at = $9
		WHERE id = $1
		RETURNING quantity`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.ProductName, s.Category, s.Price, s.Unit, s.BatchNumber, s.ExpiryDate, s.Description, s.UpdatedAt,
	).Scan(&s.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("stock item", s.ID)
		}
		if verr := checkViolation(err); verr != nil {
			return verr
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

func (r *StockRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}

// ReplaceAll deja la tabla con exactamente items: upsert de cada ítem (seq se conserva)
// y borrado del resto, en un solo batch.
func (r *StockRepo) ReplaceAll(ctx context.Context, items []*entity.StockItem) error {
	upsert := `
		INSERT INTO stock_items (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			product_name = EXCLUDED.product_name, category = EXCLUDED.category, quantity = EXCLUDED.quantity,
			price = EXCLUDED.price, unit = EXCLUDED.unit, batch_number = EXCLUDED.batch_number,
			expiry_date = EXCLUDED.expiry_date, description = EXCLUDED.description, updated_at = EXCLUDED.updated_at`

	batch := &pgx.Batch{}
	ids := make([]string, len(items))
	for i, s := range items {
		ids[i] = s.ID
		batch.Queue(upsert,
			s.ID, s.ProductName, s.Category, s.Quantity, s.Price, s.Unit, s.BatchNumber, s.ExpiryDate, s.Description,
			s.CreatedAt, s.UpdatedAt,
		)
	}
	batch.Queue(`DELETE FROM stock_items WHERE NOT (id = ANY($1))`, ids)

	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		if verr := checkViolation(err); verr != nil {
			return verr
		}
		return fmt.Errorf("replace stock: %w", err)
	}
	return nil
}

func scanStock(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(&s.ID, &s.ProductName, &s.Category, &s.Quantity, &s.Price, &s.Unit,
		&s.BatchNumber, &s.ExpiryDate, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
