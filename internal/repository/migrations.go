package repository

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// migrationPaths are tried in order; Lambda bundles live under /var/task.
var migrationPaths = []string{
	"migrations/001_initial_schema.sql",
	"./migrations/001_initial_schema.sql",
	"/var/task/migrations/001_initial_schema.sql",
}

// RunMigrations executes the schema statements one at a time, ignoring
// "already exists" failures.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	var (
		migrationSQL []byte
		err          error
	)
	for _, path := range migrationPaths {
		if migrationSQL, err = os.ReadFile(path); err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	for _, stmt := range SplitStatements(string(migrationSQL)) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("failed to execute migration: %w", err)
			}
		}
	}

	logger.Info("Database migrations completed")
	return nil
}

// SplitStatements splits a SQL script on semicolons and drops comment-only
// and blank chunks.
func SplitStatements(script string) []string {
	var statements []string
	for _, chunk := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, line)
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
