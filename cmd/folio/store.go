package main

import (
	"context"
	"fmt"

	"github.com/jonathan/folio-builder/internal/config"
	"github.com/jonathan/folio-builder/internal/db"
	"github.com/jonathan/folio-builder/internal/localstore"
	"github.com/jonathan/folio-builder/internal/server"
)

// loadConfig reads --config and the environment and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore connects the row store selected by cfg.StoreDriver. Postgres is
// migrated only when migrate is set; SQLite migrates itself on open.
func openStore(ctx context.Context, cfg *config.Config, migrate bool) (server.DBClient, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if migrate {
			if err := database.Migrate(ctx); err != nil {
				database.Close()
				return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		return database, database.Close, nil
	case config.DriverSQLite, config.DriverMemory:
		path := cfg.SQLitePath
		if cfg.StoreDriver == config.DriverMemory {
			path = ":memory:"
		}
		store, err := localstore.Open(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
