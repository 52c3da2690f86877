// Package app assembles the CarService from configuration for the server
// commands.
package app

import (
	"context"
	"fmt"

	"cars-info-processing/internal/cache"
	"cars-info-processing/internal/config"
	"cars-info-processing/internal/constants"
	"cars-info-processing/internal/repository"
	"cars-info-processing/internal/service"
	"cars-info-processing/internal/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the assembled service and the resources it owns.
type App struct {
	Service *service.CarService
	pool    *pgxpool.Pool
}

// New connects to the database when enabled, runs migrations and builds the
// service.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	var (
		store service.BatchStore
		pool  *pgxpool.Pool
	)
	if cfg.Database.Enabled {
		var err error
		pool, err = pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create database connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Info(fmt.Sprintf("%s Connected to database", constants.APIName()))

		if err := repository.RunMigrations(ctx, pool, logger); err != nil {
			logger.Warn("Failed to run migrations", zap.Error(err))
		}
		store = repository.NewCarRepository(pool)
	}

	var schema *validator.SchemaValidator
	if cfg.Processing.StrictOutput {
		var err error
		if schema, err = validator.NewSchemaValidator(logger); err != nil {
			if pool != nil {
				pool.Close()
			}
			return nil, err
		}
	}

	batches := cache.NewBatchCache(cfg.Processing.CacheTTL, logger)
	return &App{
		Service: service.NewCarService(store, schema, batches, logger),
		pool:    pool,
	}, nil
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
