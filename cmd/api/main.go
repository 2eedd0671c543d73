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
	"github.com/jhoicas/storeroom-api/internal/application/analytics"
	"github.com/jhoicas/storeroom-api/internal/application/inventory"
	"github.com/jhoicas/storeroom-api/internal/application/usecase"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
	"github.com/jhoicas/storeroom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/storeroom-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/storeroom-api/internal/interfaces/http"
	"github.com/jhoicas/storeroom-api/pkg/config"
	"github.com/jhoicas/storeroom-api/pkg/events"
	"github.com/jhoicas/storeroom-api/pkg/logger"
)

// repoSet agrupa los puertos de persistencia ya atados a un backend.
type repoSet struct {
	categories repository.CategoryRepository
	units      repository.UnitRepository
	suppliers  repository.SupplierRepository
	employees  repository.EmployeeRepository
	items      repository.ItemRepository
	reports    repository.ReportRepository
	txRunner   inventory.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := buildRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al store")
	}
	defer repos.close()

	// Bus de eventos: el tablero y cualquier otro interesado se enteran de
	// altas, ediciones y asientos sin acoplarse a los casos de uso.
	bus := events.New()
	bus.Subscribe(func(e events.Event) {
		log.Debug().
			Str("entity", e.Entity).
			Str("action", string(e.Action)).
			Str("id", e.ID).
			Msg("evento de dominio")
	})

	categoryUC := usecase.NewCategoryUseCase(repos.categories, bus)
	unitUC := usecase.NewUnitUseCase(repos.units, bus)
	supplierUC := usecase.NewSupplierUseCase(repos.suppliers, bus)
	employeeUC := usecase.NewEmployeeUseCase(repos.employees, bus)
	itemUC := usecase.NewItemUseCase(repos.items, repos.categories, repos.units, repos.txRunner, bus)
	recordMovementUC := inventory.NewRecordMovementUseCase(repos.txRunner, repos.items, repos.employees, repos.suppliers, bus)
	dashboardUC := analytics.NewDashboardUseCase(repos.reports, cfg.Inventory.LowStockThreshold)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Storeroom API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:     categoryUC,
		UnitUC:         unitUC,
		SupplierUC:     supplierUC,
		EmployeeUC:     employeeUC,
		ItemUC:         itemUC,
		RecordMovement: recordMovementUC,
		DashboardUC:    dashboardUC,
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

// buildRepos abre el backend que indique la configuración y devuelve los
// puertos listos. "postgres" es el backend principal; "sqlite" es el embebido
// para despliegues de una sola máquina.
func buildRepos(ctx context.Context, cfg *config.Config) (*repoSet, error) {
	switch cfg.DB.Driver {
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &repoSet{
			categories: sqlite.NewCategoryRepository(db),
			units:      sqlite.NewUnitRepository(db),
			suppliers:  sqlite.NewSupplierRepository(db),
			employees:  sqlite.NewEmployeeRepository(db),
			items:      sqlite.NewItemRepository(db),
			reports:    sqlite.NewReportRepository(db),
			txRunner:   sqlite.NewTxRunner(db),
			close:      func() { _ = db.Close() },
		}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &repoSet{
			categories: postgres.NewCategoryRepository(pool),
			units:      postgres.NewUnitRepository(pool),
			suppliers:  postgres.NewSupplierRepository(pool),
			employees:  postgres.NewEmployeeRepository(pool),
			items:      postgres.NewItemRepository(pool),
			reports:    postgres.NewReportRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil
	}
}
