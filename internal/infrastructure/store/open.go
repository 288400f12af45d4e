// Package store abre el Record Store configurado en STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/drvet-api/internal/application/orders"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
	"github.com/jhoicas/drvet-api/internal/infrastructure/jsonstore"
	"github.com/jhoicas/drvet-api/internal/infrastructure/memstore"
	"github.com/jhoicas/drvet-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/drvet-api/internal/infrastructure/postgres"
	"github.com/jhoicas/drvet-api/pkg/config"
	"github.com/jhoicas/drvet-api/pkg/logger"
)

// Backend repositorios y runner transaccional de un mismo Record Store.
type Backend struct {
	Driver    string
	Customers repository.CustomerRepository
	Stock     repository.StockRepository
	Orders    repository.OrderRepository
	Tx        orders.TxRunner
	close     func(context.Context) error
}

// Close libera las conexiones del backend.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open conecta el backend indicado por cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return fromMem(cfg.Store.Driver, memstore.New(memstore.Snapshot{}, nil)), nil

	case config.StoreJSON:
		s, err := jsonstore.Open(ctx, cfg.Store.DataDir, log)
		if err != nil {
			return nil, err
		}
		return fromMem(cfg.Store.Driver, s), nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Driver:    cfg.Store.Driver,
			Customers: postgres.NewCustomerRepository(pool),
			Stock:     postgres.NewStockRepository(pool),
			Orders:    postgres.NewOrderRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.StoreMongo:
		s, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.DBName, log)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:    cfg.Store.Driver,
			Customers: s.Customers(),
			Stock:     s.Stock(),
			Orders:    s.Orders(),
			Tx:        s,
			close:     s.Close,
		}, nil
	}
	return nil, fmt.Errorf("store driver desconocido %q", cfg.Store.Driver)
}

func fromMem(driver string, s *memstore.Store) *Backend {
	return &Backend{
		Driver:    driver,
		Customers: s.Customers(),
		Stock:     s.Stock(),
		Orders:    s.Orders(),
		Tx:        s,
	}
}
