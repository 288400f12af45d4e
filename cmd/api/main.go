package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/drvet-api/internal/application/analytics"
	appinventory "github.com/jhoicas/drvet-api/internal/application/inventory"
	"github.com/jhoicas/drvet-api/internal/application/orders"
	"github.com/jhoicas/drvet-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/drvet-api/internal/infrastructure/pdf"
	"github.com/jhoicas/drvet-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/drvet-api/internal/interfaces/http"
	"github.com/jhoicas/drvet-api/internal/scheduler"
	"github.com/jhoicas/drvet-api/pkg/config"
	"github.com/jhoicas/drvet-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	// el UI espera números JSON, no strings
	decimal.MarshalJSONWithoutQuotes = true

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("abrir record store")
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("cerrar record store")
		}
	}()

	if cfg.Store.SeedDefaultStock {
		n, err := usecase.SeedDefaultStock(ctx, backend.Stock)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar catálogo inicial")
		}
		if n > 0 {
			log.Info().Int("items", n).Msg("catálogo inicial cargado")
		}
	}

	customerUC := usecase.NewCustomerUseCase(backend.Customers)
	stockUC := usecase.NewStockUseCase(backend.Stock)
	ledger := appinventory.NewStockLedger(backend.Stock)
	processor := orders.NewProcessor(
		backend.Tx, ledger, backend.Customers, backend.Orders,
		orders.Options{
			RestockOnCancel:       cfg.Orders.RestockOnCancel,
			EnforceTerminalStatus: cfg.Orders.EnforceTerminalStatus,
		},
		log,
	)
	dashboardUC := appanalytics.NewDashboardUseCase(backend.Customers, backend.Stock, backend.Orders)

	sched := scheduler.NewScheduler(cfg.Scheduler.LowStockCron, stockUC, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}

	app := httpRouter.NewApp(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	}, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		CustomerUC:  customerUC,
		StockUC:     stockUC,
		Ledger:      ledger,
		Processor:   processor,
		DashboardUC: dashboardUC,
		Receipts:    infrapdf.NewReceiptGenerator(""),
		SwaggerFile: cfg.HTTP.SwaggerFile,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sched.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
