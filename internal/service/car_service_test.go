package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cars-info-processing/internal/cache"
	apperrors "cars-info-processing/internal/errors"
	"cars-info-processing/internal/models"
	"cars-info-processing/internal/testutil"
	"cars-info-processing/internal/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type memoryStore struct {
	mu      sync.Mutex
	batches map[string][]models.Car
	saveErr error
	finds   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{batches: make(map[string][]models.Car)}
}

func (m *memoryStore) SaveBatch(_ context.Context, batchID string, cars []models.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.batches[batchID] = cars
	return nil
}

func (m *memoryStore) FindBatch(_ context.Context, batchID string) ([]models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	cars, ok := m.batches[batchID]
	if !ok {
		return nil, apperrors.NewNotFoundError("batch " + batchID + " not found")
	}
	return cars, nil
}

func newTestService(t *testing.T, store BatchStore, strict bool) (*CarService, *testutil.LogCapture) {
	t.Helper()
	capture := testutil.NewLogCapture(zapcore.DebugLevel)
	logger := capture.Logger()

	var schema *validator.SchemaValidator
	if strict {
		var err error
		schema, err = validator.NewSchemaValidator(logger)
		require.NoError(t, err)
	}
	return NewCarService(store, schema, cache.NewBatchCache(time.Hour, logger), logger), capture
}

func TestCarService_ParseInput(t *testing.T) {
	svc, _ := newTestService(t, nil, false)

	cars, err := svc.ParseInput(testutil.ValidCarsJSON())
	require.NoError(t, err)
	require.Len(t, cars, 3)
	assert.Equal(t, []string{"ac", "gps"}, cars[0].Features())

	_, err = svc.ParseInput("   ")
	assert.ErrorIs(t, err, apperrors.ErrEmptyInput)

	_, err = svc.ParseInput(testutil.InvalidCarsBadPrice())
	assert.ErrorIs(t, err, apperrors.ErrFormat)

	_, err = svc.ParseInput(testutil.InvalidCarsEmptyBrand())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCarService_SerializeRoundTrip(t *testing.T) {
	svc, _ := newTestService(t, nil, false)

	cars, err := svc.ParseInput(testutil.GeneratedCarsJSON(25))
	require.NoError(t, err)

	output, err := svc.Serialize(cars)
	require.NoError(t, err)

	again, err := svc.ParseInput(output)
	require.NoError(t, err)
	require.Len(t, again, len(cars))
	for i := range cars {
		assert.True(t, cars[i].Equal(again[i]), "car %d", i)
	}
}

func TestCarService_Process(t *testing.T) {
	svc, capture := newTestService(t, nil, true)

	result, err := svc.Process(context.Background(), models.ProcessRequest{
		Input: testutil.ValidCarsJSON(),
		Operations: []models.Operation{
			{Type: models.OperationFilter, Field: "is_used", Value: "true"},
			{Type: models.OperationSort, Field: "price", Ascending: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	assert.False(t, result.Persisted)
	_, err = uuid.Parse(result.BatchID)
	assert.NoError(t, err)

	cars, err := svc.ParseInput(result.Output)
	require.NoError(t, err)
	require.Len(t, cars, 2)
	assert.Equal(t, uint64(2), cars[0].ID())
	assert.Equal(t, uint64(3), cars[1].ID())

	assert.True(t, capture.Contains("Processed batch"))
	assert.True(t, capture.Contains("car_count=2"))
}

func TestCarService_Process_NoMatchesGivesEmptyList(t *testing.T) {
	svc, _ := newTestService(t, nil, true)

	result, err := svc.Process(context.Background(), models.ProcessRequest{
		Input:      testutil.ValidCarsJSON(),
		Operations: []models.Operation{{Type: models.OperationFilter, Field: "brand", Value: "Ferrari"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, "[]", result.Output)
}

func TestCarService_Process_Errors(t *testing.T) {
	svc, _ := newTestService(t, nil, false)

	tests := []struct {
		name    string
		req     models.ProcessRequest
		wantErr error
	}{
		{
			name:    "empty input",
			req:     models.ProcessRequest{Input: ""},
			wantErr: apperrors.ErrEmptyInput,
		},
		{
			name: "unknown operation",
			req: models.ProcessRequest{
				Input:      testutil.ValidCarsJSON(),
				Operations: []models.Operation{{Type: "group", Field: "brand"}},
			},
			wantErr: apperrors.ErrFormat,
		},
		{
			name: "unknown field",
			req: models.ProcessRequest{
				Input:      testutil.ValidCarsJSON(),
				Operations: []models.Operation{{Type: models.OperationSort, Field: "colour"}},
			},
			wantErr: apperrors.ErrFormat,
		},
		{
			name:    "persist without store",
			req:     models.ProcessRequest{Input: testutil.ValidCarsJSON(), Persist: true},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Process(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCarService_Process_UnescapableTextIsRejected(t *testing.T) {
	svc, _ := newTestService(t, nil, true)

	for _, brand := range []string{`To\yota`, "To\tyota", `Toyota\`} {
		t.Run(brand, func(t *testing.T) {
			input := `[{"car_id":"1","brand":"` + brand + `","model":"Corolla","year":"2020","price":"1","is_used":"false","features":["ac"]}]`

			_, err := svc.ParseInput(input)
			assert.ErrorIs(t, err, apperrors.ErrFormat)

			_, err = svc.Process(context.Background(), models.ProcessRequest{Input: input})
			assert.ErrorIs(t, err, apperrors.ErrFormat)
			assert.NotErrorIs(t, err, apperrors.ErrInternal)
			assert.Equal(t, "brand", apperrors.AsAppError(err).Field)
		})
	}
}

func TestCarService_CheckOutput_MalformedDocument(t *testing.T) {
	svc, capture := newTestService(t, nil, true)

	err := svc.checkOutput(`[{"brand": "To\yota"}]`)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.True(t, capture.Contains("Output is not valid JSON"))
}

func TestCarService_Process_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t, nil, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Process(ctx, models.ProcessRequest{Input: testutil.ValidCarsJSON()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCarService_PersistAndGetBatch(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newTestService(t, store, false)
	ctx := context.Background()

	result, err := svc.Process(ctx, models.ProcessRequest{Input: testutil.ValidCarsJSON(), Persist: true})
	require.NoError(t, err)
	assert.True(t, result.Persisted)
	require.Contains(t, store.batches, result.BatchID)

	// Served from the cache.
	cars, err := svc.GetBatch(ctx, result.BatchID)
	require.NoError(t, err)
	assert.Len(t, cars, 3)
	assert.Equal(t, 0, store.finds)

	// Falls back to the store once the cache is cleared.
	svc.batches.InvalidateAll()
	cars, err = svc.GetBatch(ctx, result.BatchID)
	require.NoError(t, err)
	assert.Len(t, cars, 3)
	assert.Equal(t, 1, store.finds)
}

func TestCarService_GetBatch_Errors(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestService(t, nil, false)
	_, err := svc.GetBatch(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrFormat)

	_, err = svc.GetBatch(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	withStore, _ := newTestService(t, newMemoryStore(), false)
	_, err = withStore.GetBatch(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCarService_Process_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = errors.New("connection reset")
	svc, capture := newTestService(t, store, false)

	_, err := svc.Process(context.Background(), models.ProcessRequest{Input: testutil.ValidCarsJSON(), Persist: true})
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.True(t, capture.Contains("Failed to save batch"))
	assert.Equal(t, 0, svc.batches.Len())
}

func TestCarService_ProcessedCountLogged(t *testing.T) {
	svc, capture := newTestService(t, nil, false)
	for i := 0; i < 10; i++ {
		_, err := svc.Process(context.Background(), models.ProcessRequest{Input: testutil.ValidCarsJSON()})
		require.NoError(t, err)
	}
	assert.True(t, capture.Contains("Processed batches count count=10"))
}

func TestNewCarService_NilCache(t *testing.T) {
	svc := NewCarService(nil, nil, nil, zap.NewNop())
	result, err := svc.Process(context.Background(), models.ProcessRequest{Input: testutil.ValidCarsJSON()})
	require.NoError(t, err)

	cars, err := svc.GetBatch(context.Background(), result.BatchID)
	require.NoError(t, err)
	assert.Len(t, cars, 3)
}
