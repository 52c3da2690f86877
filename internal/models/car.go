package models

import (
	"fmt"
	"math"
	"slices"
	"unicode"

	apperrors "cars-info-processing/internal/errors"
)

// Car is a validated vehicle record. All fields are set at construction and
// never change afterwards.
type Car struct {
	id       uint64
	brand    string
	model    string
	year     uint64
	price    float64
	used     bool
	features []string
}

// NewCar creates a Car, failing with a validation error when an invariant
// does not hold. The features are copied and sorted ascending.
func NewCar(id uint64, brand, model string, year uint64, price float64, used bool, features []string) (Car, error) {
	if brand == "" {
		return Car{}, apperrors.NewValidationError(FieldBrand.String(), "brand cannot be empty")
	}
	if model == "" {
		return Car{}, apperrors.NewValidationError(FieldModel.String(), "model cannot be empty")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return Car{}, apperrors.NewValidationError(FieldPrice.String(), "price must be a finite non-negative number")
	}
	if features == nil {
		return Car{}, apperrors.NewValidationError(FieldFeatures.String(), "features cannot be null")
	}
	if err := CheckText(brand); err != nil {
		return Car{}, apperrors.NewValidationError(FieldBrand.String(), err.Error())
	}
	if err := CheckText(model); err != nil {
		return Car{}, apperrors.NewValidationError(FieldModel.String(), err.Error())
	}
	for _, feature := range features {
		if err := CheckText(feature); err != nil {
			return Car{}, apperrors.NewValidationError(FieldFeatures.String(), err.Error())
		}
	}

	sorted := slices.Clone(features)
	slices.Sort(sorted)

	return Car{
		id:       id,
		brand:    brand,
		model:    model,
		year:     year,
		price:    price,
		used:     used,
		features: sorted,
	}, nil
}

// CheckText rejects text that cannot be written inside a quoted value.
// There are no escape sequences, so double quotes, backslashes and control
// characters are refused.
func CheckText(s string) error {
	for _, r := range s {
		switch {
		case r == '"':
			return fmt.Errorf("%q contains a double quote", s)
		case r == '\\':
			return fmt.Errorf("%q contains a backslash", s)
		case unicode.IsControl(r):
			return fmt.Errorf("%q contains control character %U", s, r)
		}
	}
	return nil
}

// DefaultCar returns the placeholder car used where no record is available.
func DefaultCar() Car {
	return Car{
		id:       0,
		brand:    "undefined",
		model:    "undefined",
		year:     0,
		price:    0,
		used:     false,
		features: []string{},
	}
}

func (c Car) ID() uint64     { return c.id }
func (c Car) Brand() string  { return c.brand }
func (c Car) Model() string  { return c.model }
func (c Car) Year() uint64   { return c.year }
func (c Car) Price() float64 { return c.price }
func (c Car) IsUsed() bool   { return c.used }

// Features returns a copy of the car's feature list.
func (c Car) Features() []string {
	if c.features == nil {
		return []string{}
	}
	return slices.Clone(c.features)
}

// FeatureCount avoids the copy made by Features.
func (c Car) FeatureCount() int {
	return len(c.features)
}

// Equal reports whether two cars hold the same values field for field.
func (c Car) Equal(other Car) bool {
	return c.id == other.id &&
		c.brand == other.brand &&
		c.model == other.model &&
		c.year == other.year &&
		c.price == other.price &&
		c.used == other.used &&
		slices.Equal(c.features, other.features)
}
