// Package converter maps validated raw records to cars and cars back to
// JSON text.
package converter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	apperrors "cars-info-processing/internal/errors"
	"cars-info-processing/internal/models"
	"cars-info-processing/internal/validator"
)

// ToEntities validates every record and builds the cars. Features are sorted
// ascending. The whole conversion fails on the first bad record.
func ToEntities(records []models.RawRecord) ([]models.Car, error) {
	if len(records) == 0 {
		return nil, apperrors.NewEmptyInputError("records are empty")
	}

	cars := make([]models.Car, 0, len(records))
	for i, record := range records {
		car, err := toEntity(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		cars = append(cars, car)
	}
	return cars, nil
}

func toEntity(record models.RawRecord) (models.Car, error) {
	if err := validator.ValidateRecord(record); err != nil {
		return models.Car{}, err
	}

	id, err := validator.ParseUnsigned(record[models.FieldCarID][1])
	if err != nil {
		return models.Car{}, apperrors.NewFieldFormatError(models.FieldCarID.String(), err.Error())
	}
	year, err := validator.ParseUnsigned(record[models.FieldYear][1])
	if err != nil {
		return models.Car{}, apperrors.NewFieldFormatError(models.FieldYear.String(), err.Error())
	}
	price, err := validator.ParsePrice(record[models.FieldPrice][1])
	if err != nil {
		return models.Car{}, apperrors.NewFieldFormatError(models.FieldPrice.String(), err.Error())
	}
	used, err := validator.ParseBool(record[models.FieldIsUsed][1])
	if err != nil {
		return models.Car{}, apperrors.NewFieldFormatError(models.FieldIsUsed.String(), err.Error())
	}

	features := NormalizeFeatures(record[models.FieldFeatures].Values())

	return models.NewCar(
		id,
		record[models.FieldBrand][1],
		record[models.FieldModel][1],
		year,
		price,
		used,
		features,
	)
}

// NormalizeFeatures returns a sorted copy using ordinal comparison.
// Duplicates are kept.
func NormalizeFeatures(features []string) []string {
	out := make([]string, len(features))
	copy(out, features)
	slices.Sort(out)
	return out
}

// ToJSON renders cars as a single-line JSON array. Every car is re-validated
// first; one invalid car fails the whole call.
func ToJSON(cars []models.Car) (string, error) {
	for i, car := range cars {
		if err := validator.ValidateCar(car); err != nil {
			return "", fmt.Errorf("car %d: %w", i, err)
		}
	}

	var sb strings.Builder
	sb.WriteString("[")
	for i, car := range cars {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeCar(&sb, car)
	}
	sb.WriteString("]")
	return sb.String(), nil
}

func writeCar(sb *strings.Builder, car models.Car) {
	sb.WriteString(`{"car_id": `)
	sb.WriteString(strconv.FormatUint(car.ID(), 10))
	sb.WriteString(`, "brand": "`)
	sb.WriteString(car.Brand())
	sb.WriteString(`", "model": "`)
	sb.WriteString(car.Model())
	sb.WriteString(`", "year": `)
	sb.WriteString(strconv.FormatUint(car.Year(), 10))
	sb.WriteString(`, "price": `)
	sb.WriteString(models.FormatPrice(car.Price()))
	sb.WriteString(`, "is_used": `)
	sb.WriteString(strconv.FormatBool(car.IsUsed()))
	sb.WriteString(`, "features": [`)
	for i, feature := range car.Features() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(`"`)
		sb.WriteString(feature)
		sb.WriteString(`"`)
	}
	sb.WriteString("]}")
}
