package lambda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cars-info-processing/internal/constants"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	poolMu   sync.Mutex
	poolOnce sync.Once
	pool     *pgxpool.Pool
	poolErr  error
)

// GetConnectionPool returns the pool shared by every invocation of a warm
// Lambda container. The first call decides the outcome.
func GetConnectionPool(ctx context.Context, databaseURL string, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolMu.Lock()
	defer poolMu.Unlock()

	poolOnce.Do(func() {
		config, err := pgxpool.ParseConfig(databaseURL)
		if err != nil {
			poolErr = fmt.Errorf("failed to parse database URL: %w", err)
			return
		}

		// RDS Proxy does the real pooling.
		config.MaxConns = 2
		config.MinConns = 1
		config.MaxConnIdleTime = 0
		config.MaxConnLifetime = 0
		// Zero panics in recent pgx versions.
		config.HealthCheckPeriod = 30 * time.Second

		created, err := pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			poolErr = fmt.Errorf("failed to create connection pool: %w", err)
			return
		}
		if err := created.Ping(ctx); err != nil {
			created.Close()
			poolErr = fmt.Errorf("failed to ping database: %w", err)
			return
		}
		pool = created

		if logger != nil {
			logger.Info(fmt.Sprintf("%s Lambda connection pool initialized", constants.APIName()),
				zap.Int32("max_connections", config.MaxConns),
				zap.Int32("min_connections", config.MinConns),
			)
		}
	})

	return pool, poolErr
}

// CloseConnectionPool closes the pool and allows it to be created again.
func CloseConnectionPool() {
	poolMu.Lock()
	defer poolMu.Unlock()

	if pool != nil {
		pool.Close()
	}
	pool = nil
	poolErr = nil
	poolOnce = sync.Once{}
}
