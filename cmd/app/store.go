package main

import (
	"context"
	"fmt"

	"github.com/njb1/what2do/internal/config"
	"github.com/njb1/what2do/internal/db"
	"github.com/njb1/what2do/internal/logger"
	"github.com/njb1/what2do/internal/repository"
	"github.com/njb1/what2do/internal/repository/sqlite"
	"github.com/njb1/what2do/internal/service"
)

// openStore returns the task store selected by cfg.DBDriver and a function
// that releases it.
func openStore(ctx context.Context, cfg *config.Config) (service.TaskStore, func(), error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		repo, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite store", "path", cfg.SQLitePath)
		return repo, func() { repo.Close() }, nil

	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.PostgresDSN(), cfg.DBMaxConns)
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoSchema {
			if err := db.ApplySchema(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("apply schema: %w", err)
			}
			logger.Info("schema applied")
		}
		return repository.NewTaskRepository(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}
