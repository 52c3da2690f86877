package filter

import (
	"cars-info-processing/internal/models"
)

// ByField keeps the cars whose canonical field string equals value exactly.
// The input slice is not modified.
func ByField(field models.Field, value string, cars []models.Car) ([]models.Car, error) {
	if err := field.Validate(); err != nil {
		return nil, err
	}
	filtered := make([]models.Car, 0)
	for _, car := range cars {
		if field.Format(car) == value {
			filtered = append(filtered, car)
		}
	}
	return filtered, nil
}

// ByName resolves a user-supplied field name before filtering.
func ByName(name, value string, cars []models.Car) ([]models.Car, error) {
	field, err := models.ParseField(name)
	if err != nil {
		return nil, err
	}
	return ByField(field, value, cars)
}
