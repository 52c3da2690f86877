package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"cars-info-processing/internal/cache"
	"cars-info-processing/internal/constants"
	"cars-info-processing/internal/converter"
	apperrors "cars-info-processing/internal/errors"
	"cars-info-processing/internal/filter"
	"cars-info-processing/internal/models"
	"cars-info-processing/internal/parser"
	"cars-info-processing/internal/sorting"
	"cars-info-processing/internal/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BatchStore persists processed batches. The pgx CarRepository implements it.
type BatchStore interface {
	SaveBatch(ctx context.Context, batchID string, cars []models.Car) error
	FindBatch(ctx context.Context, batchID string) ([]models.Car, error)
}

type CarService struct {
	store          BatchStore
	schema         *validator.SchemaValidator
	batches        *cache.BatchCache
	processedCount *atomic.Uint64
	logger         *zap.Logger
	newID          func() string
}

// NewCarService wires the processing pipeline. store may be nil when no
// database is configured; schema may be nil to skip output checks.
func NewCarService(
	store BatchStore,
	schema *validator.SchemaValidator,
	batches *cache.BatchCache,
	logger *zap.Logger,
) *CarService {
	if batches == nil {
		batches = cache.NewBatchCache(0, logger)
	}
	return &CarService{
		store:          store,
		schema:         schema,
		batches:        batches,
		processedCount: &atomic.Uint64{},
		logger:         logger,
		newID:          uuid.NewString,
	}
}

// ParseInput turns raw input text into validated cars. Any bad record fails
// the whole input.
func (s *CarService) ParseInput(text string) ([]models.Car, error) {
	records, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return converter.ToEntities(records)
}

func (s *CarService) Filter(cars []models.Car, fieldName, value string) ([]models.Car, error) {
	return filter.ByName(fieldName, value, cars)
}

func (s *CarService) Sort(cars []models.Car, ascending bool, fieldName string) ([]models.Car, error) {
	return sorting.ByName(cars, ascending, fieldName)
}

func (s *CarService) Serialize(cars []models.Car) (string, error) {
	return converter.ToJSON(cars)
}

// Apply runs the operations over cars in the order given.
func (s *CarService) Apply(cars []models.Car, operations []models.Operation) ([]models.Car, error) {
	var err error
	for i, op := range operations {
		switch op.Type {
		case models.OperationFilter:
			cars, err = s.Filter(cars, op.Field, op.Value)
		case models.OperationSort:
			cars, err = s.Sort(cars, op.Ascending, op.Field)
		default:
			err = apperrors.NewFormatError(fmt.Sprintf("unknown operation type %q", op.Type))
		}
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
	}
	return cars, nil
}

// Process parses the request input, applies its operations, serializes the
// result and records the batch in the cache and, when asked, the store.
func (s *CarService) Process(ctx context.Context, req models.ProcessRequest) (*models.ProcessResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Persist && s.store == nil {
		return nil, apperrors.NewValidationError("persist", "persistence is not enabled")
	}

	cars, err := s.ParseInput(req.Input)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s Failed to parse input", constants.APIName()), zap.Error(err))
		return nil, err
	}

	cars, err = s.Apply(cars, req.Operations)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s Failed to apply operations", constants.APIName()), zap.Error(err))
		return nil, err
	}

	output, err := s.Serialize(cars)
	if err != nil {
		return nil, err
	}
	if err := s.checkOutput(output); err != nil {
		return nil, err
	}

	batchID := s.newID()
	if req.Persist {
		if err := s.store.SaveBatch(ctx, batchID, cars); err != nil {
			s.logger.Error(fmt.Sprintf("%s Failed to save batch", constants.APIName()),
				zap.String("batch_id", batchID), zap.Error(err))
			return nil, apperrors.NewInternalError(err)
		}
	}
	s.batches.Put(batchID, cars)

	s.logProcessedCount()
	s.logger.Info(fmt.Sprintf("%s Processed batch", constants.APIName()),
		zap.String("batch_id", batchID),
		zap.Int("car_count", len(cars)),
		zap.Int("operation_count", len(req.Operations)),
		zap.Bool("persisted", req.Persist),
	)

	return &models.ProcessResult{
		BatchID:     batchID,
		Count:       len(cars),
		Output:      output,
		Persisted:   req.Persist,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

// GetBatch returns the cars of an earlier batch from the cache, falling back
// to the store.
func (s *CarService) GetBatch(ctx context.Context, batchID string) ([]models.Car, error) {
	if _, err := uuid.Parse(batchID); err != nil {
		return nil, apperrors.NewFormatError(fmt.Sprintf("invalid batch id %q", batchID))
	}
	if cars, ok := s.batches.Get(batchID); ok {
		return cars, nil
	}
	if s.store == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("batch %s not found", batchID))
	}

	cars, err := s.store.FindBatch(ctx, batchID)
	if err != nil {
		return nil, apperrors.AsAppError(err)
	}
	s.batches.Put(batchID, cars)
	return cars, nil
}

// checkOutput validates serialized output against the car list schema when a
// schema validator is configured.
func (s *CarService) checkOutput(output string) error {
	if s.schema == nil {
		return nil
	}
	result, err := s.schema.ValidateDocument(output)
	if err != nil {
		s.logger.Error(fmt.Sprintf("%s Output is not valid JSON", constants.APIName()), zap.Error(err))
		return apperrors.NewValidationError("", fmt.Sprintf("output is not a valid car list: %v", err))
	}
	if !result.Valid {
		first := result.Errors[0]
		s.logger.Error(fmt.Sprintf("%s Output does not match schema", constants.APIName()),
			zap.String("field", first.Field), zap.Int("error_count", len(result.Errors)))
		return apperrors.NewValidationError(first.Field, first.Message)
	}
	return nil
}

func (s *CarService) logProcessedCount() {
	count := s.processedCount.Add(1)
	if count%10 == 0 {
		s.logger.Info(fmt.Sprintf("%s *** Processed batches count", constants.APIName()), zap.Uint64("count", count))
	}
}
