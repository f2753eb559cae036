package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

const defaultMigrationsPath = "./migrations"

// migrator applies the report table migrations. storage-path is a postgres
// URL without the scheme, e.g. user:pass@localhost:5432/sync?sslmode=disable.
func main() {
	var storagePath, migrationsPath, migrationsTable string
	var down bool

	flag.StringVar(&storagePath, "storage-path", os.Getenv("STORAGE_PATH"), "postgres address without scheme")
	flag.StringVar(&migrationsPath, "migrations-path", defaultMigrationsPath, "path to migrations")
	flag.StringVar(&migrationsTable, "migrations-table", "sync_schema_migrations", "table that records applied migrations")
	flag.BoolVar(&down, "down", false, "roll every migration back")
	flag.Parse()

	log := logger.SetupLogger(logger.EnvLocal)

	if storagePath == "" {
		log.Error("empty storage path")
		os.Exit(1)
	}

	m, err := migrate.New(
		"file://"+migrationsPath,
		fmt.Sprintf("postgres://%s%sx-migrations-table=%s", storagePath, querySeparator(storagePath), migrationsTable),
	)
	if err != nil {
		log.Error("failed to init migrations", logger.Err(err))
		os.Exit(1)
	}

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return
		}

		log.Error("failed to apply migrations", logger.Err(err))
		os.Exit(1)
	}

	log.Info("migrations applied", slog.Bool("down", down))
}

func querySeparator(storagePath string) string {
	if strings.Contains(storagePath, "?") {
		return "&"
	}

	return "?"
}
