package cache

import (
	"slices"
	"sync"
	"time"

	"cars-info-processing/internal/models"

	"go.uber.org/zap"
)

type BatchCache struct {
	ttl    time.Duration
	cache  map[string]*CachedBatch
	mu     sync.RWMutex
	logger *zap.Logger
	now    func() time.Time
}

type CachedBatch struct {
	ID       string
	Cars     []models.Car
	LoadedAt time.Time
}

// NewBatchCache creates a cache whose entries expire after ttl. A zero ttl
// keeps entries until they are invalidated.
func NewBatchCache(ttl time.Duration, logger *zap.Logger) *BatchCache {
	return &BatchCache{
		ttl:    ttl,
		cache:  make(map[string]*CachedBatch),
		logger: logger,
		now:    time.Now,
	}
}

func (bc *BatchCache) Get(id string) ([]models.Car, bool) {
	bc.mu.RLock()
	cached, exists := bc.cache[id]
	bc.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if bc.expired(cached) {
		bc.mu.Lock()
		// Double-check after acquiring write lock
		if current, ok := bc.cache[id]; ok && bc.expired(current) {
			delete(bc.cache, id)
		}
		bc.mu.Unlock()
		return nil, false
	}
	return slices.Clone(cached.Cars), true
}

func (bc *BatchCache) Put(id string, cars []models.Car) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	bc.cache[id] = &CachedBatch{
		ID:       id,
		Cars:     slices.Clone(cars),
		LoadedAt: bc.now(),
	}
	bc.logger.Debug("Cached batch",
		zap.String("batch_id", id),
		zap.Int("car_count", len(cars)))
}

func (bc *BatchCache) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.cache)
}

func (bc *BatchCache) Invalidate(id string) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	delete(bc.cache, id)
}

func (bc *BatchCache) InvalidateAll() {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.cache = make(map[string]*CachedBatch)
}

func (bc *BatchCache) expired(cached *CachedBatch) bool {
	return bc.ttl > 0 && bc.now().Sub(cached.LoadedAt) >= bc.ttl
}
