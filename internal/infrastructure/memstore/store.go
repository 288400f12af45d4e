// Package memstore implementa el Record Store en memoria: tres colecciones ordenadas
// protegidas por un único RWMutex. Opcionalmente delega la durabilidad en un Persister
// (ver jsonstore), que recibe el estado completo antes de hacerlo visible.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/drvet-api/internal/application/orders"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

var _ orders.TxRunner = (*Store)(nil)

// Collection nombre lógico de una colección.
type Collection string

const (
	Customers Collection = "customers"
	Stock     Collection = "stock"
	Orders    Collection = "orders"
)

// Snapshot contenido completo del store. Los slices se tratan como inmutables una vez publicados.
type Snapshot struct {
	Customers []entity.Customer
	Stock     []entity.StockItem
	Orders    []entity.Order
}

// Persister hace durable un Snapshot. changed lista las colecciones modificadas;
// si Persist falla el store no publica el nuevo estado.
type Persister interface {
	Persist(ctx context.Context, snap Snapshot, changed []Collection) error
}

// Store Record Store en memoria. El valor cero no es utilizable; usar New.
type Store struct {
	mu        sync.RWMutex
	data      Snapshot
	persister Persister
}

// New construye el store con el contenido inicial. persister puede ser nil.
func New(initial Snapshot, persister Persister) *Store {
	return &Store{data: initial.clone(), persister: persister}
}

// Customers devuelve el repositorio de clientes (fuera de transacción).
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{db: s} }

// Stock devuelve el repositorio de stock (fuera de transacción).
func (s *Store) Stock() *StockRepo { return &StockRepo{db: s} }

// Orders devuelve el repositorio de órdenes (fuera de transacción).
func (s *Store) Orders() *OrderRepo { return &OrderRepo{db: s} }

// Snapshot devuelve una copia del contenido actual.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

// Run ejecuta fn con repositorios atados a una copia del estado, bajo el lock de escritura.
// Si fn falla no se publica nada; si no, las colecciones modificadas se persisten juntas.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.begin()
	if err := fn(&StockRepo{db: tx}, &OrderRepo{db: tx}); err != nil {
		return err
	}
	return s.commit(ctx, tx)
}

// accessor abstrae el acceso al estado: el Store (con lock) o una transacción en curso.
type accessor interface {
	read(fn func(data *Snapshot))
	write(ctx context.Context, fn func(tx *txState) error) error
}

func (s *Store) read(fn func(data *Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

func (s *Store) write(ctx context.Context, fn func(tx *txState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.begin()
	if err := fn(tx); err != nil {
		return err
	}
	return s.commit(ctx, tx)
}

// begin requiere s.mu tomado para escritura.
func (s *Store) begin() *txState {
	return &txState{data: s.data.clone(), changed: map[Collection]bool{}}
}

// commit requiere s.mu tomado para escritura.
func (s *Store) commit(ctx context.Context, tx *txState) error {
	if len(tx.changed) == 0 {
		return nil
	}
	changed := make([]Collection, 0, len(tx.changed))
	for _, c := range []Collection{Customers, Stock, Orders} {
		if tx.changed[c] {
			changed = append(changed, c)
		}
	}
	if s.persister != nil {
		if err := s.persister.Persist(ctx, tx.data, changed); err != nil {
			return err
		}
	}
	s.data = tx.data
	return nil
}

// txState estado privado de una transacción; no necesita lock propio.
type txState struct {
	data    Snapshot
	changed map[Collection]bool
}

func (t *txState) read(fn func(data *Snapshot)) { fn(&t.data) }

func (t *txState) write(_ context.Context, fn func(tx *txState) error) error { return fn(t) }

func (t *txState) touch(c Collection) { t.changed[c] = true }

func (d Snapshot) clone() Snapshot {
	return Snapshot{
		Customers: slices.Clone(d.Customers),
		Stock:     slices.Clone(d.Stock),
		Orders:    slices.Clone(d.Orders),
	}
}
