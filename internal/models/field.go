package models

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	apperrors "cars-info-processing/internal/errors"
)

// Field names one of the seven schema keys.
type Field int

const (
	FieldCarID Field = iota
	FieldBrand
	FieldModel
	FieldYear
	FieldPrice
	FieldIsUsed
	FieldFeatures
)

// FeatureSeparator joins features into their canonical string form.
const FeatureSeparator = ", "

type fieldSpec struct {
	name    string
	format  func(Car) string
	compare func(a, b Car) int
}

var fieldSpecs = [...]fieldSpec{
	FieldCarID: {
		name:    "car_id",
		format:  func(c Car) string { return strconv.FormatUint(c.id, 10) },
		compare: func(a, b Car) int { return cmp.Compare(a.id, b.id) },
	},
	FieldBrand: {
		name:    "brand",
		format:  func(c Car) string { return c.brand },
		compare: func(a, b Car) int { return strings.Compare(a.brand, b.brand) },
	},
	FieldModel: {
		name:    "model",
		format:  func(c Car) string { return c.model },
		compare: func(a, b Car) int { return strings.Compare(a.model, b.model) },
	},
	FieldYear: {
		name:    "year",
		format:  func(c Car) string { return strconv.FormatUint(c.year, 10) },
		compare: func(a, b Car) int { return cmp.Compare(a.year, b.year) },
	},
	FieldPrice: {
		name:    "price",
		format:  func(c Car) string { return FormatPrice(c.price) },
		compare: func(a, b Car) int { return cmp.Compare(a.price, b.price) },
	},
	FieldIsUsed: {
		name:    "is_used",
		format:  func(c Car) string { return strconv.FormatBool(c.used) },
		compare: func(a, b Car) int { return compareBool(a.used, b.used) },
	},
	FieldFeatures: {
		name:    "features",
		format:  func(c Car) string { return strings.Join(c.features, FeatureSeparator) },
		compare: func(a, b Car) int {
			return strings.Compare(strings.Join(a.features, FeatureSeparator), strings.Join(b.features, FeatureSeparator))
		},
	},
}

// Fields lists every field in schema order.
func Fields() []Field {
	return []Field{FieldCarID, FieldBrand, FieldModel, FieldYear, FieldPrice, FieldIsUsed, FieldFeatures}
}

// ParseField resolves a case-sensitive field name.
func ParseField(name string) (Field, error) {
	for i, spec := range fieldSpecs {
		if spec.name == name {
			return Field(i), nil
		}
	}
	return 0, apperrors.NewFieldFormatError(name, "no such field")
}

// Validate fails with a format error for values outside the seven fields.
func (f Field) Validate() error {
	if f < FieldCarID || f > FieldFeatures {
		return apperrors.NewFormatError(fmt.Sprintf("unknown field %d", int(f)))
	}
	return nil
}

func (f Field) String() string {
	if f.Validate() != nil {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldSpecs[f].name
}

// Format returns the canonical string of the field's value on c. f must be
// one of Fields().
func (f Field) Format(c Car) string {
	return fieldSpecs[f].format(c)
}

// Compare orders a and b by the field: negative, zero or positive. f must be
// one of Fields().
func (f Field) Compare(a, b Car) int {
	return fieldSpecs[f].compare(a, b)
}

// FormatPrice renders a price with '.' as the decimal separator and no
// exponent.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
