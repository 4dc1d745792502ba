package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// migrator is the subset of *migrate.Migrate used by run.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or version")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	m, closeFn, err := newMigrator(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeFn()

	if err := run(m, *mode); err != nil {
		log.Fatal(err)
	}
}

func newMigrator(cfg *config.Config) (migrator, func(), error) {
	database, err := db.NewDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(database, &postgres.Config{})
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return m, func() { _, _ = m.Close() }, nil
}

func run(m migrator, mode string) error {
	l := logger.L()

	switch mode {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
	case "down":
		if err := m.Steps(-1); err != nil {
			if errors.Is(err, migrate.ErrNilVersion) || errors.Is(err, migrate.ErrNoChange) {
				l.Info("no migrations to roll back")
				return nil
			}
			return fmt.Errorf("migrate down: %w", err)
		}
	case "version":
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'version')", mode)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		l.Info("schema has no migrations applied", zap.String("mode", mode))
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	l.Info("schema version",
		zap.String("mode", mode),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
