package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/fudge-api/docs"
	"github.com/jhoicas/fudge-api/internal/application/auth"
	"github.com/jhoicas/fudge-api/internal/application/inventory"
	"github.com/jhoicas/fudge-api/internal/application/report"
	"github.com/jhoicas/fudge-api/internal/application/seed"
	"github.com/jhoicas/fudge-api/internal/application/usecase"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
	"github.com/jhoicas/fudge-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/fudge-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fudge-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/fudge-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/fudge-api/internal/interfaces/http"
	"github.com/jhoicas/fudge-api/pkg/config"
	"github.com/jhoicas/fudge-api/pkg/logger"
)

// userStore repositorio de usuarios con upsert de admin (ambos drivers lo cumplen).
type userStore interface {
	repository.UserRepository
	seed.AdminUpserter
}

type repos struct {
	users     userStore
	sweets    repository.SweetRepository
	movements repository.StockMovementRepository
	tx        inventory.TxRunner
	close     func()
}

// @title                       Fudge! API
// @version                     1.0
// @description                 API de inventario de la confitería Fudge!: catálogo, compras y reposición.
// @host                        localhost:1417
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
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
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// price viaja como número JSON, no como string
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	r, err := openRepos(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer r.close()

	seeder := seed.NewSeeder(r.users, r.sweets, cfg.JWT.BcryptCost)
	if cfg.Seed.AdminEmail != "" {
		if _, err := seeder.Admin(ctx, seed.AdminInput{
			Username: cfg.Seed.AdminUsername,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		}); err != nil {
			log.Fatal().Err(err).Msg("crear cuenta admin")
		}
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("cuenta admin lista")
	}
	if cfg.Seed.SampleData {
		n, err := seeder.SampleCatalog(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar catálogo de ejemplo")
		}
		log.Info().Int("sweets", n).Msg("catálogo de ejemplo")
	}

	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
		BcryptCost: cfg.JWT.BcryptCost,
	})
	sweetUC := usecase.NewSweetUseCase(r.sweets, cfg.Catalog.PageSize)
	inventoryUC := inventory.NewUseCase(r.tx, r.sweets, r.movements, cfg.Catalog.PageSize)
	reportUC := report.NewUseCase(r.sweets, infrapdf.NewMarotoStockReportGenerator("Fudge!"), cfg.Catalog.LowStockThreshold)

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:      cfg.App.Name,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Fudge! API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	deps := httpRouter.RouterDeps{
		AuthUC:        authUC,
		SweetUC:       sweetUC,
		InventoryUC:   inventoryUC,
		ReportUC:      reportUC,
		AuthRateLimit: cfg.HTTP.AuthRateLimit,
	}
	if cfg.Redis.Enabled() {
		storage, err := infraredis.NewStorage(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.App.Name+":limiter:")
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer storage.Close()
		deps.LimiterStorage = storage
		log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limiter sobre Redis")
	}
	httpRouter.Router(app, deps)

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
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

// openRepos construye los repositorios del driver configurado.
func openRepos(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.DB.Driver == config.StorageMemory {
		store := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &repos{
			users:     store.Users(),
			sweets:    store.Sweets(),
			movements: store.Movements(),
			tx:        store.TxRunner(),
			close:     func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repos{
		users:     postgres.NewUserRepository(pool),
		sweets:    postgres.NewSweetRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}
