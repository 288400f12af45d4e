// Package scheduler ejecuta tareas periódicas sobre el inventario.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/pkg/logger"
)

const reportTimeout = time.Minute

// LowStockSource devuelve los ítems con stock bajo (usecase.StockUseCase).
type LowStockSource interface {
	LowStock(ctx context.Context) ([]*entity.StockItem, error)
}

// Scheduler agenda el reporte de stock bajo.
type Scheduler struct {
	cron   *cron.Cron
	source LowStockSource
	spec   string
	log    *logger.Logger
}

// NewScheduler crea el scheduler. spec es una expresión cron de 5 campos; vacío desactiva la tarea.
func NewScheduler(spec string, source LowStockSource, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		source: source,
		spec:   spec,
		log:    log.Named("scheduler"),
	}
}

// Start registra la tarea y arranca el cron. Error si la expresión es inválida.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.log.Info().Msg("reporte de stock bajo desactivado")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.runLowStockReport); err != nil {
		return fmt.Errorf("LOW_STOCK_CRON %q: %w", s.spec, err)
	}
	s.log.Info().Str("spec", s.spec).Msg("iniciando scheduler")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso (o a que ctx expire).
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler detenido con una tarea en curso")
	}
}

func (s *Scheduler) runLowStockReport() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()
	_, _ = s.LowStockReport(ctx)
}

// LowStockReport registra un warn por ítem bajo el umbral y devuelve cuántos hay.
func (s *Scheduler) LowStockReport(ctx context.Context) (int, error) {
	items, err := s.source.LowStock(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reporte de stock bajo fallido")
		return 0, err
	}
	for _, it := range items {
		s.log.Warn().
			Str("stock_id", it.ID).
			Str("product", it.ProductName).
			Int("quantity", it.Quantity).
			Msg("stock bajo")
	}
	s.log.Info().Int("low_stock_items", len(items)).Msg("reporte de stock bajo")
	return len(items), nil
}
