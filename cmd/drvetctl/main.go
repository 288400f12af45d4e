// drvetctl consulta el Record Store configurado desde la terminal.
//
//	drvetctl stock [-low]
//	drvetctl orders [-status pending]
//	drvetctl dashboard
//	drvetctl seed
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	appanalytics "github.com/jhoicas/drvet-api/internal/application/analytics"
	appinventory "github.com/jhoicas/drvet-api/internal/application/inventory"
	"github.com/jhoicas/drvet-api/internal/application/orders"
	"github.com/jhoicas/drvet-api/internal/application/usecase"
	"github.com/jhoicas/drvet-api/internal/infrastructure/store"
	"github.com/jhoicas/drvet-api/pkg/config"
	"github.com/jhoicas/drvet-api/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: drvetctl <stock|orders|dashboard|seed> [flags]")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd, args := os.Args[1], os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", Output: os.Stderr})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := store.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "store:", err)
		os.Exit(1)
	}
	defer backend.Close(context.Background())

	if err := run(ctx, backend, cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, cmd+":", err)
		backend.Close(context.Background())
		os.Exit(1)
	}
}

func run(ctx context.Context, backend *store.Backend, cmd string, args []string) error {
	switch cmd {
	case "stock":
		fs := flag.NewFlagSet("stock", flag.ExitOnError)
		low := fs.Bool("low", false, "only items below the low-stock threshold")
		_ = fs.Parse(args)

		items, err := backend.Stock.List(ctx)
		if err != nil {
			return err
		}
		if *low {
			items, err = usecase.NewStockUseCase(backend.Stock).LowStock(ctx)
			if err != nil {
				return err
			}
		}
		return renderStock(os.Stdout, items)

	case "orders":
		fs := flag.NewFlagSet("orders", flag.ExitOnError)
		status := fs.String("status", "", "filter by status (pending, completed, cancelled)")
		_ = fs.Parse(args)

		p := orders.NewProcessor(backend.Tx, appinventory.NewStockLedger(backend.Stock),
			backend.Customers, backend.Orders, orders.Options{}, nil)
		list, err := p.ListOrders(ctx, *status)
		if err != nil {
			return err
		}
		return renderOrders(os.Stdout, list)

	case "dashboard":
		stats, err := appanalytics.NewDashboardUseCase(backend.Customers, backend.Stock, backend.Orders).ComputeStats(ctx)
		if err != nil {
			return err
		}
		return renderDashboard(os.Stdout, stats)

	case "seed":
		n, err := usecase.SeedDefaultStock(ctx, backend.Stock)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("stock is not empty; nothing seeded")
			return nil
		}
		fmt.Printf("seeded %d stock items\n", n)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}
