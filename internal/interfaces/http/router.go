package http

import (
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/octavian/nexus-inventory/internal/application/audit"
	appidentity "github.com/octavian/nexus-inventory/internal/application/identity"
	"github.com/octavian/nexus-inventory/internal/application/inventory"
	"github.com/octavian/nexus-inventory/internal/application/report"
	"github.com/octavian/nexus-inventory/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Env       string
	ProductUC *usecase.ProductUseCase
	Ledger    *inventory.LedgerUseCase
	Recorder  *audit.Recorder
	Resolver  *appidentity.Resolver
	Reports   *report.UseCase
	// Metrics handler de /metrics; nil no expone métricas.
	Metrics     nethttp.Handler
	JWTSecret   string
	JWTIssuer   string
	RateLimit   string // vacío desactiva el límite
	SwaggerFile string // vacío desactiva /docs
}

// NewApp crea la aplicación Fiber con los middlewares comunes y registra las rutas.
func NewApp(deps RouterDeps) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: fiberErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    deps.AppName,
		}))
	}
	if err := Router(app, deps); err != nil {
		return nil, err
	}
	return app, nil
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) error {
	meta := NewMetaHandler(deps.AppName, deps.Env)
	app.Get("/health", meta.Health)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api/v1", IdentityMiddleware(deps.JWTSecret, deps.JWTIssuer))
	if deps.RateLimit != "" {
		limit, err := RateLimit(deps.RateLimit)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT inválido %q: %w", deps.RateLimit, err)
		}
		api.Use(limit)
	}

	api.Get("/meta", meta.Meta)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger, deps.Recorder, deps.Resolver)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/stock", productHandler.AdjustStock)
	products.Get("/:id/movements", productHandler.Movements)
	products.Get("/:id/ledger-check", productHandler.LedgerCheck)

	// Stock movements
	movements := api.Group("/stock-movements")
	movementHandler := NewStockMovementHandler(deps.Ledger, deps.Recorder, deps.Resolver)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.Recent)

	// Audit logs
	auditHandler := NewAuditHandler(deps.Recorder)
	api.Get("/audit-logs", auditHandler.Recent)

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.Resolver)
	users.Get("/me", RequireIdentity(), userHandler.Me)
	users.Get("/", userHandler.List)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/inventory.pdf", reportHandler.InventoryPDF)
	reports.Get("/inventory.xlsx", reportHandler.InventoryXLSX)
	reports.Get("/inventory", reportHandler.Inventory)

	return nil
}
