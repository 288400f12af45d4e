// Package orders implementa el procesador de órdenes: valida, reserva stock y persiste
// la orden junto con el descuento de stock en una única transacción del Record Store.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/drvet-api/internal/application/dto"
	appinventory "github.com/jhoicas/drvet-api/internal/application/inventory"
	"github.com/jhoicas/drvet-api/internal/domain"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/inventory"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
	"github.com/jhoicas/drvet-api/pkg/logger"
)

// Options comportamiento configurable del procesador. Con el valor cero cualquier transición
// de estado es válida y cancelar no repone stock.
type Options struct {
	// RestockOnCancel: entrar a cancelled devuelve las cantidades; salir de cancelled las vuelve a reservar.
	RestockOnCancel bool
	// EnforceTerminalStatus: completed y cancelled no admiten transiciones.
	EnforceTerminalStatus bool
}

// Processor orquesta la creación y el ciclo de vida de las órdenes.
type Processor struct {
	txRunner     TxRunner
	ledger       *appinventory.StockLedger
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	numbers      *NumberGenerator
	opts         Options
	log          *logger.Logger
	now          func() time.Time
}

// NewProcessor construye el procesador. log puede ser nil.
func NewProcessor(
	txRunner TxRunner,
	ledger *appinventory.StockLedger,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	opts Options,
	log *logger.Logger,
) *Processor {
	return &Processor{
		txRunner:     txRunner,
		ledger:       ledger,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		numbers:      NewNumberGenerator(),
		opts:         opts,
		log:          log.Named("orders"),
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (p *Processor) WithClock(now func() time.Time) *Processor {
	p.now = now
	return p
}

// CreateOrder valida las líneas, reserva el stock y guarda la orden en estado pending.
// El descuento de stock y la inserción de la orden se confirman juntos o no se confirma ninguno.
func (p *Processor) CreateOrder(ctx context.Context, customerID string, lines []entity.OrderLine, notes string) (*entity.Order, error) {
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	if customerID == "" {
		return nil, domain.NewValidationError("customerId", "is required")
	}

	customer, err := p.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, domain.NewNotFoundError("customer", customerID)
	}

	var order *entity.Order
	err = p.txRunner.Run(ctx, func(stockRepo repository.StockRepository, orderRepo repository.OrderRepository) error {
		now := p.now()
		res, err := p.ledger.ReserveAndDecrement(ctx, stockRepo, lines, now)
		if err != nil {
			return err
		}

		priced := make([]entity.OrderLine, len(lines))
		for i, l := range lines {
			priced[i] = entity.OrderLine{
				StockID:     l.StockID,
				ProductName: res.Items[i].ProductName,
				Quantity:    l.Quantity,
				UnitPrice:   res.UnitPrices[i],
			}
		}

		o := &entity.Order{
			ID:           uuid.New().String(),
			OrderNumber:  p.numbers.Next(now),
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
			Lines:        priced,
			TotalAmount:  inventory.Total(priced),
			Status:       entity.OrderStatusPending,
			Notes:        notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := stockRepo.ReplaceAll(ctx, res.Stock); err != nil {
			return fmt.Errorf("write stock: %w", err)
		}
		if err := orderRepo.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Str("order_number", order.OrderNumber).
		Str("customer_id", order.CustomerID).
		Int("lines", len(order.Lines)).
		Str("total", order.TotalAmount.StringFixed(2)).
		Msg("orden creada")
	return order, nil
}

// CreateOrderFromRequest adapta el body HTTP a CreateOrder.
func (p *Processor) CreateOrderFromRequest(ctx context.Context, in dto.CreateOrderRequest) (*entity.Order, error) {
	lines := make([]entity.OrderLine, len(in.Items))
	for i, it := range in.Items {
		lines[i] = entity.OrderLine{StockID: it.StockID, Quantity: it.Quantity}
	}
	return p.CreateOrder(ctx, in.CustomerID, lines, in.Notes)
}

// UpdateOrder cambia status y/o notes. Líneas y total no se modifican.
func (p *Processor) UpdateOrder(ctx context.Context, id string, in dto.UpdateOrderRequest) (*entity.Order, error) {
	if in.Status != nil && !entity.ValidOrderStatus(*in.Status) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", *in.Status))
	}

	var updated *entity.Order
	var from string
	err := p.txRunner.Run(ctx, func(stockRepo repository.StockRepository, orderRepo repository.OrderRepository) error {
		o, err := orderRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if o == nil {
			return domain.NewNotFoundError("order", id)
		}
		from = o.Status
		now := p.now()

		if in.Status != nil && *in.Status != o.Status {
			if err := p.transition(ctx, stockRepo, o, *in.Status, now); err != nil {
				return err
			}
			o.Status = *in.Status
		}
		if in.Notes != nil {
			o.Notes = *in.Notes
		}
		o.UpdatedAt = now

		if err := orderRepo.Update(ctx, o); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Str("order_number", updated.OrderNumber).
		Str("from", from).
		Str("to", updated.Status).
		Msg("orden actualizada")
	return updated, nil
}

// UpdateOrderStatus atajo de UpdateOrder solo con status.
func (p *Processor) UpdateOrderStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	return p.UpdateOrder(ctx, id, dto.UpdateOrderRequest{Status: &status})
}

// transition aplica las reglas opcionales de cambio de estado dentro de la transacción.
func (p *Processor) transition(ctx context.Context, stockRepo repository.StockRepository, o *entity.Order, to string, now time.Time) error {
	if p.opts.EnforceTerminalStatus && isTerminal(o.Status) {
		return domain.NewValidationError("status", fmt.Sprintf("order is %s and cannot change status", o.Status))
	}
	if !p.opts.RestockOnCancel {
		return nil
	}

	switch {
	case to == entity.OrderStatusCancelled:
		stock, err := p.ledger.Release(ctx, stockRepo, o.Lines, now)
		if err != nil {
			return err
		}
		if err := stockRepo.ReplaceAll(ctx, stock); err != nil {
			return fmt.Errorf("write stock: %w", err)
		}
	case o.Status == entity.OrderStatusCancelled:
		res, err := p.ledger.ReserveAndDecrement(ctx, stockRepo, o.Lines, now)
		if err != nil {
			return err
		}
		if err := stockRepo.ReplaceAll(ctx, res.Stock); err != nil {
			return fmt.Errorf("write stock: %w", err)
		}
	}
	return nil
}

// DeleteOrder elimina la orden sin reponer stock. Borrar un id inexistente no es error.
func (p *Processor) DeleteOrder(ctx context.Context, id string) error {
	if err := p.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	p.log.Info().Str("order_id", id).Msg("orden eliminada")
	return nil
}

// GetOrder devuelve la orden; NotFoundError si no existe.
func (p *Processor) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	o, err := p.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, domain.NewNotFoundError("order", id)
	}
	return o, nil
}

// ListOrders devuelve las órdenes en orden de inserción, filtradas por status si no es vacío.
func (p *Processor) ListOrders(ctx context.Context, status string) ([]*entity.Order, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	list, err := p.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if status == "" {
		return list, nil
	}
	out := make([]*entity.Order, 0, len(list))
	for _, o := range list {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func validateLines(lines []entity.OrderLine) error {
	if len(lines) == 0 {
		return domain.NewValidationError("items", "order must contain at least one item")
	}
	for i, l := range lines {
		if l.StockID == "" {
			return domain.NewValidationError(fmt.Sprintf("items[%d].stockId", i), "is required")
		}
		if l.Quantity <= 0 {
			return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
	}
	return nil
}

func isTerminal(status string) bool {
	return status == entity.OrderStatusCompleted || status == entity.OrderStatusCancelled
}
