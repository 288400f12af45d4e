package memstore

import (
	"context"
	"slices"

	"github.com/jhoicas/drvet-api/internal/domain"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.StockRepository    = (*StockRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
)

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	db accessor
}

func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.write(ctx, func(tx *txState) error {
		if indexOf(tx.data.Customers, customer.ID, customerID) >= 0 {
			return domain.ErrDuplicate
		}
		tx.data.Customers = append(tx.data.Customers, *customer)
		tx.touch(Customers)
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.db.read(func(data *Snapshot) {
		if i := indexOf(data.Customers, id, customerID); i >= 0 {
			c := data.Customers[i]
			out = &c
		}
	})
	return out, nil
}

func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	r.db.read(func(data *Snapshot) {
		out = make([]*entity.Customer, len(data.Customers))
		for i := range data.Customers {
			c := data.Customers[i]
			out[i] = &c
		}
	})
	return out, nil
}

func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.write(ctx, func(tx *txState) error {
		i := indexOf(tx.data.Customers, customer.ID, customerID)
		if i < 0 {
			return domain.NewNotFoundError("customer", customer.ID)
		}
		tx.data.Customers[i] = *customer
		tx.touch(Customers)
		return nil
	})
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(tx *txState) error {
		if indexOf(tx.data.Customers, id, customerID) < 0 {
			return nil
		}
		tx.data.Customers = slices.DeleteFunc(tx.data.Customers, func(c entity.Customer) bool { return c.ID == id })
		tx.touch(Customers)
		return nil
	})
}

// StockRepo implementación en memoria de StockRepository.
type StockRepo struct {
	db accessor
}

func (r *StockRepo) Create(ctx context.Context, item *entity.StockItem) error {
	return r.db.write(ctx, func(tx *txState) error {
		if indexOf(tx.data.Stock, item.ID, stockID) >= 0 {
			return domain.ErrDuplicate
		}
		tx.data.Stock = append(tx.data.Stock, *item)
		tx.touch(Stock)
		return nil
	})
}

func (r *StockRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	var out *entity.StockItem
	r.db.read(func(data *Snapshot) {
		if i := indexOf(data.Stock, id, stockID); i >= 0 {
			s := data.Stock[i]
			out = &s
		}
	})
	return out, nil
}

func (r *StockRepo) List(_ context.Context) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	r.db.read(func(data *Snapshot) {
		out = make([]*entity.StockItem, len(data.Stock))
		for i := range data.Stock {
			s := data.Stock[i]
			out[i] = &s
		}
	})
	return out, nil
}

// ListForUpdate equivale a List: dentro de Run el lock de escritura ya está tomado.
func (r *StockRepo) ListForUpdate(ctx context.Context) ([]*entity.StockItem, error) {
	return r.List(ctx)
}

func (r *StockRepo) Update(ctx context.Context, item *entity.StockItem) error {
	return r.db.write(ctx, func(tx *txState) error {
		i := indexOf(tx.data.Stock, item.ID, stockID)
		if i < 0 {
			return domain.NewNotFoundError("stock item", item.ID)
		}
		tx.data.Stock[i] = *item
		tx.touch(Stock)
		return nil
	})
}

func (r *StockRepo) UpdateDetails(ctx context.Context, item *entity.StockItem) error {
	return r.db.write(ctx, func(tx *txState) error {
		i := indexOf(tx.data.Stock, item.ID, stockID)
		if i < 0 {
			return domain.NewNotFoundError("stock item", item.ID)
		}
		item.Quantity = tx.data.Stock[i].Quantity
		tx.data.Stock[i] = *item
		tx.touch(Stock)
		return nil
	})
}

func (r *StockRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(tx *txState) error {
		if indexOf(tx.data.Stock, id, stockID) < 0 {
			return nil
		}
		tx.data.Stock = slices.DeleteFunc(tx.data.Stock, func(s entity.StockItem) bool { return s.ID == id })
		tx.touch(Stock)
		return nil
	})
}

func (r *StockRepo) ReplaceAll(ctx context.Context, items []*entity.StockItem) error {
	return r.db.write(ctx, func(tx *txState) error {
		next := make([]entity.StockItem, len(items))
		for i, it := range items {
			next[i] = *it
		}
		tx.data.Stock = next
		tx.touch(Stock)
		return nil
	})
}

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	db accessor
}

func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	return r.db.write(ctx, func(tx *txState) error {
		for _, o := range tx.data.Orders {
			if o.ID == order.ID || o.OrderNumber == order.OrderNumber {
				return domain.ErrDuplicate
			}
		}
		tx.data.Orders = append(tx.data.Orders, order.Clone())
		tx.touch(Orders)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.db.read(func(data *Snapshot) {
		if i := indexOf(data.Orders, id, orderID); i >= 0 {
			o := data.Orders[i].Clone()
			out = &o
		}
	})
	return out, nil
}

func (r *OrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	var out []*entity.Order
	r.db.read(func(data *Snapshot) {
		out = make([]*entity.Order, len(data.Orders))
		for i := range data.Orders {
			o := data.Orders[i].Clone()
			out[i] = &o
		}
	})
	return out, nil
}

func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	return r.db.write(ctx, func(tx *txState) error {
		i := indexOf(tx.data.Orders, order.ID, orderID)
		if i < 0 {
			return domain.NewNotFoundError("order", order.ID)
		}
		stored := tx.data.Orders[i]
		stored.Status = order.Status
		stored.Notes = order.Notes
		stored.UpdatedAt = order.UpdatedAt
		tx.data.Orders[i] = stored
		tx.touch(Orders)
		return nil
	})
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(tx *txState) error {
		if indexOf(tx.data.Orders, id, orderID) < 0 {
			return nil
		}
		tx.data.Orders = slices.DeleteFunc(tx.data.Orders, func(o entity.Order) bool { return o.ID == id })
		tx.touch(Orders)
		return nil
	})
}

func customerID(c *entity.Customer) string { return c.ID }
func stockID(s *entity.StockItem) string   { return s.ID }
func orderID(o *entity.Order) string       { return o.ID }

func indexOf[T any](items []T, id string, key func(*T) string) int {
	for i := range items {
		if key(&items[i]) == id {
			return i
		}
	}
	return -1
}
