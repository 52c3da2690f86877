package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	apperrors "cars-info-processing/internal/errors"
	"cars-info-processing/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CarRepository struct {
	pool *pgxpool.Pool
}

func NewCarRepository(pool *pgxpool.Pool) *CarRepository {
	return &CarRepository{pool: pool}
}

// SaveBatch stores the batch header and every car in one transaction,
// keeping the slice order in the position column.
func (r *CarRepository) SaveBatch(ctx context.Context, batchID string, cars []models.Car) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	exists, err := existsBatch(ctx, tx, batchID)
	if err != nil {
		return err
	}
	if exists {
		return NewDuplicateBatchError(batchID, "")
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO car_batches (batch_id, car_count) VALUES ($1, $2)",
		batchID, len(cars),
	); err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	batch := &pgx.Batch{}
	for i, car := range cars {
		batch.Queue(
			`INSERT INTO cars (batch_id, position, car_id, brand, model, year, price, is_used, features)
			 VALUES ($1, $2, $3::text::numeric, $4, $5, $6::text::numeric, $7, $8, $9)`,
			batchID, i,
			strconv.FormatUint(car.ID(), 10),
			car.Brand(), car.Model(),
			strconv.FormatUint(car.Year(), 10),
			car.Price(), car.IsUsed(), car.Features(),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert cars: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindBatch loads the cars of a batch in their saved order.
func (r *CarRepository) FindBatch(ctx context.Context, batchID string) ([]models.Car, error) {
	exists, err := existsBatch(ctx, r.pool, batchID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("batch %s not found", batchID))
	}

	rows, err := r.pool.Query(ctx,
		`SELECT car_id::text, brand, model, year::text, price, is_used, features
		 FROM cars WHERE batch_id = $1 ORDER BY position`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	cars := make([]models.Car, 0)
	for rows.Next() {
		var (
			idText, yearText string
			brand, model     string
			price            float64
			used             bool
			features         []string
		)
		if err := rows.Scan(&idText, &brand, &model, &yearText, &price, &used, &features); err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}

		id, err := strconv.ParseUint(idText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid stored car_id %q: %w", idText, err)
		}
		year, err := strconv.ParseUint(yearText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid stored year %q: %w", yearText, err)
		}
		if features == nil {
			features = []string{}
		}

		car, err := models.NewCar(id, brand, model, year, price, used, features)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cars: %w", err)
	}
	return cars, nil
}

func (r *CarRepository) ExistsBatch(ctx context.Context, batchID string) (bool, error) {
	return existsBatch(ctx, r.pool, batchID)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func existsBatch(ctx context.Context, q queryRower, batchID string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM car_batches WHERE batch_id = $1)",
		batchID,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check batch: %w", err)
	}
	return exists, nil
}
