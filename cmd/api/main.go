package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/core-stock/docs"
	appanalytics "github.com/jhoicas/core-stock/internal/application/analytics"
	"github.com/jhoicas/core-stock/internal/application/auth"
	"github.com/jhoicas/core-stock/internal/application/inventory"
	"github.com/jhoicas/core-stock/internal/application/labels"
	"github.com/jhoicas/core-stock/internal/application/navigation"
	"github.com/jhoicas/core-stock/internal/application/purchasing"
	appreorder "github.com/jhoicas/core-stock/internal/application/reorder"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/domain/repository"
	"github.com/jhoicas/core-stock/internal/infrastructure/excel"
	"github.com/jhoicas/core-stock/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/core-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/core-stock/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/core-stock/internal/interfaces/http"
	"github.com/jhoicas/core-stock/pkg/config"
	"github.com/jhoicas/core-stock/pkg/logger"
)

// repos implementaciones de los puertos según STORAGE_DRIVER.
type repos struct {
	stock     repository.StockRepository
	usage     repository.UsageRepository
	suppliers repository.SupplierRepository
	users     repository.UserRepository
	orders    repository.PurchaseOrderRepository
	receipts  repository.GoodsReceiptRepository
	tx        purchasing.TxRunner
	issueTx   inventory.IssueTxRunner
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
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer r.close()

	params := reorder.Params{
		SafetyFactor:   cfg.Reorder.SafetyFactor,
		ExtraCoverDays: cfg.Reorder.ExtraCoverDays,
		HistoryDays:    cfg.Reorder.HistoryDays,
	}
	if err := params.Validate(); err != nil {
		log.Fatal().Err(err).Msg("parámetros de reorden")
	}

	reorderUC := appreorder.NewReorderUseCase(r.stock, r.usage, r.suppliers, excel.NewSuggestionsExporter(), params, log)
	purchasingUC := purchasing.NewPurchasingUseCase(r.orders, r.receipts, reorderUC, r.tx, log).
		WithDocuments(r.suppliers, infrapdf.NewPurchaseOrderGenerator())
	labelsUC := labels.NewLabelsUseCase(r.stock, r.suppliers, infrapdf.NewLabelGenerator())
	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Core Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		NavigationUC: navigation.NewNavigationUseCase(nil),
		ReorderUC:    reorderUC,
		PurchasingUC: purchasingUC,
		LabelsUC:     labelsUC,
		IssueUC:      inventory.NewIssueStockUseCase(r.issueTx, log),
		DashboardUC:  appanalytics.NewDashboardUseCase(reorderUC, r.orders, r.usage),
		JWTSecret:    cfg.JWT.Secret,
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

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &repos{
			stock:     postgres.NewStockRepository(pool),
			usage:     postgres.NewUsageRepository(pool),
			suppliers: postgres.NewSupplierRepository(pool),
			users:     postgres.NewUserRepository(pool),
			orders:    postgres.NewPurchaseOrderRepository(pool),
			receipts:  postgres.NewGoodsReceiptRepository(pool),
			tx:        postgres.NewTxRunner(pool),
			issueTx:   postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	}

	store := memory.NewStore()
	if err := memory.Seed(store, memory.SeedConfig{Seed: cfg.Storage.Seed, HistoryDays: cfg.Reorder.HistoryDays}); err != nil {
		return nil, err
	}
	log.Info().
		Uint64("seed", cfg.Storage.Seed).
		Str("password", memory.DemoPassword).
		Msg("datos demo cargados en memoria")
	return &repos{
		stock:     memory.NewStockRepository(store),
		usage:     memory.NewUsageRepository(store),
		suppliers: memory.NewSupplierRepository(store),
		users:     memory.NewUserRepository(store),
		orders:    memory.NewPurchaseOrderRepository(store),
		receipts:  memory.NewGoodsReceiptRepository(store),
		tx:        memory.NewTxRunner(store),
		issueTx:   memory.NewTxRunner(store),
		close:     func() {},
	}, nil
}
