package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/octavian/nexus-inventory/docs"
	"github.com/octavian/nexus-inventory/internal/application/audit"
	appidentity "github.com/octavian/nexus-inventory/internal/application/identity"
	"github.com/octavian/nexus-inventory/internal/application/inventory"
	"github.com/octavian/nexus-inventory/internal/application/report"
	"github.com/octavian/nexus-inventory/internal/application/usecase"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
	"github.com/octavian/nexus-inventory/internal/infrastructure/memory"
	"github.com/octavian/nexus-inventory/internal/infrastructure/metrics"
	infrapdf "github.com/octavian/nexus-inventory/internal/infrastructure/pdf"
	"github.com/octavian/nexus-inventory/internal/infrastructure/postgres"
	"github.com/octavian/nexus-inventory/internal/infrastructure/tracing"
	infraxlsx "github.com/octavian/nexus-inventory/internal/infrastructure/xlsx"
	httpRouter "github.com/octavian/nexus-inventory/internal/interfaces/http"
	"github.com/octavian/nexus-inventory/pkg/config"
	"github.com/octavian/nexus-inventory/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage agrupa los repositorios del backend elegido con STORE_DRIVER.
type storage struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	users     repository.UserRepository
	audits    repository.AuditLogRepository
	txRunner  inventory.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTel.Endpoint, cfg.App.Name, docs.SwaggerInfo.Version)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	m := metrics.New()
	ledgerUC := inventory.NewLedgerUseCase(store.txRunner, store.products, store.movements, inventory.WithObserver(m))
	resolver := appidentity.NewResolver(store.users)
	recorder := audit.NewRecorder(store.audits, resolver, audit.ParsePolicy(cfg.Audit.FailurePolicy), log.Component("audit")).
		WithObserver(m)
	productUC := usecase.NewProductUseCase(store.products)
	reportUC := report.NewUseCase(store.products, infrapdf.NewMarotoReportRenderer(cfg.App.Name), infraxlsx.NewExcelizeReportRenderer())

	deps := httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Env:       cfg.App.Env,
		ProductUC: productUC,
		Ledger:    ledgerUC,
		Recorder:  recorder,
		Resolver:  resolver,
		Reports:   reportUC,
		Metrics:   m.Handler(),
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
		RateLimit: cfg.HTTP.RateLimit,
	}
	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		deps.SwaggerFile = swaggerFile
	}

	app, err := httpRouter.NewApp(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar router HTTP")
	}

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

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.StoreMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			products:  memory.NewProductRepository(s),
			movements: memory.NewStockMovementRepository(s),
			users:     memory.NewUserRepository(s),
			audits:    memory.NewAuditLogRepository(s),
			txRunner:  memory.NewTxRunner(s),
			close:     func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		users:     postgres.NewUserRepository(pool),
		audits:    postgres.NewAuditLogRepository(pool),
		txRunner:  postgres.NewTxRunner(pool, cfg.Ledger.MaxAttempts, log.Component("tx")),
		close:     pool.Close,
	}, nil
}
