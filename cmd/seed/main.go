// seed prepara una base PostgreSQL: aplica migraciones, crea (o promueve) la cuenta admin
// y opcionalmente carga el catálogo de ejemplo.
//
// Uso: go run ./cmd/seed --admin-email admin@fudge.test --admin-password secret [--sample] [--reset]
// Los valores por defecto salen de ADMIN_EMAIL, ADMIN_PASSWORD, ADMIN_USERNAME y SEED_SAMPLE_DATA.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/fudge-api/internal/application/seed"
	"github.com/jhoicas/fudge-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fudge-api/pkg/config"
	"github.com/jhoicas/fudge-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	username := flags.String("admin-username", cfg.Seed.AdminUsername, "username de la cuenta admin")
	email := flags.String("admin-email", cfg.Seed.AdminEmail, "email de la cuenta admin")
	password := flags.String("admin-password", cfg.Seed.AdminPassword, "password de la cuenta admin")
	sample := flags.Bool("sample", cfg.Seed.SampleData, "cargar el catálogo de ejemplo si no hay dulces")
	reset := flags.Bool("reset", false, "revertir todas las migraciones antes de aplicarlas")
	_ = flags.Parse(os.Args[1:])

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: cfg.App.Name}).Component("seed")

	if cfg.DB.Driver != config.StoragePostgres {
		log.Fatal().Str("storage", cfg.DB.Driver).Msg("seed solo aplica a STORAGE_DRIVER=postgres; el driver memory se siembra al arrancar la API")
	}
	if *email == "" && !*sample {
		log.Fatal().Msg("nada que hacer: indique --admin-email o --sample")
	}

	dsn := cfg.DB.ConnectionString()
	if *reset {
		if err := postgres.RollbackAll(dsn); err != nil {
			log.Fatal().Err(err).Msg("revertir migraciones")
		}
		log.Info().Msg("migraciones revertidas")
	}
	if err := postgres.RunMigrations(dsn); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	seeder := seed.NewSeeder(postgres.NewUserRepository(pool), postgres.NewSweetRepository(pool), cfg.JWT.BcryptCost)

	if *email != "" {
		admin, err := seeder.Admin(ctx, seed.AdminInput{Username: *username, Email: *email, Password: *password})
		if err != nil {
			log.Fatal().Err(err).Msg("crear cuenta admin")
		}
		log.Info().Str("email", admin.Email).Msg("cuenta admin lista")
	}
	if *sample {
		n, err := seeder.SampleCatalog(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar catálogo de ejemplo")
		}
		log.Info().Int("sweets", n).Msg("catálogo de ejemplo")
	}
}
