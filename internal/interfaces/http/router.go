package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/drvet-api/internal/application/analytics"
	appinventory "github.com/jhoicas/drvet-api/internal/application/inventory"
	"github.com/jhoicas/drvet-api/internal/application/orders"
	"github.com/jhoicas/drvet-api/internal/application/usecase"
	"github.com/jhoicas/drvet-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	CustomerUC  *usecase.CustomerUseCase
	StockUC     *usecase.StockUseCase
	Ledger      *appinventory.StockLedger
	Processor   *orders.Processor
	DashboardUC *appanalytics.DashboardUseCase
	Receipts    orders.ReceiptGenerator // opcional
	SwaggerFile string                  // vacío o inexistente: sin /docs
	Logger      *logger.Logger
}

// NewApp crea la aplicación fiber con recover, log de peticiones y todas las rutas.
func NewApp(cfg fiber.Config, deps RouterDeps) *fiber.App {
	if cfg.AppName == "" {
		cfg.AppName = deps.AppName
	}
	app := fiber.New(cfg)
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Logger))

	// Swagger UI en local: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "DRVET API",
			}))
		} else {
			deps.Logger.Named("http").Warn().Str("file", deps.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.Ledger)
	stock.Get("/", stockHandler.List)
	stock.Post("/", stockHandler.Create)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Put("/:id", stockHandler.Update)
	stock.Delete("/:id", stockHandler.Delete)
	stock.Get("/:id/availability", stockHandler.Availability)

	// Orders: la creación descuenta stock en la misma transacción
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Processor, deps.Receipts)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetStats)
}
