package main

import (
	"context"
	"fmt"
	"time"

	"cars-info-processing/internal/cache"
	"cars-info-processing/internal/config"
	"cars-info-processing/internal/constants"
	"cars-info-processing/internal/lambda"
	"cars-info-processing/internal/logging"
	"cars-info-processing/internal/repository"
	"cars-info-processing/internal/service"
	"cars-info-processing/internal/validator"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

const batchCacheTTL = 15 * time.Minute

var handler *lambda.Handler

func init() {
	cfg, err := config.LoadLambdaConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load Lambda config: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}

	ctx := context.Background()
	var store service.BatchStore
	if cfg.DatabaseEnabled {
		pool, err := lambda.GetConnectionPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize connection pool", zap.Error(err))
		}
		if err := repository.RunMigrations(ctx, pool, logger); err != nil {
			logger.Warn("Failed to run migrations", zap.Error(err))
		}
		store = repository.NewCarRepository(pool)
	}

	var schema *validator.SchemaValidator
	if cfg.StrictOutput {
		if schema, err = validator.NewSchemaValidator(logger); err != nil {
			logger.Fatal("Failed to compile output schema", zap.Error(err))
		}
	}

	carService := service.NewCarService(store, schema, cache.NewBatchCache(batchCacheTTL, logger), logger)
	handler = lambda.NewHandler(service.NewCarGRPCService(carService, logger), logger)

	logger.Info(fmt.Sprintf("%s Lambda handler initialized", constants.APIName()),
		zap.Bool("database_enabled", cfg.DatabaseEnabled))
}

func main() {
	awslambda.Start(handler.Handle)
}
