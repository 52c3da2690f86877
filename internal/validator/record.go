package validator

import (
	"fmt"
	"regexp"
	"strconv"

	apperrors "cars-info-processing/internal/errors"
	"cars-info-processing/internal/models"
)

// RecordFieldCount is the number of field groups every record carries.
const RecordFieldCount = 7

var pricePattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

type valueCheck func(value string) error

// recordChecks maps each scalar field to its primitive parse check.
var recordChecks = map[models.Field]valueCheck{
	models.FieldCarID:  checkUnsigned,
	models.FieldBrand:  models.CheckText,
	models.FieldModel:  models.CheckText,
	models.FieldYear:   checkUnsigned,
	models.FieldPrice:  checkPrice,
	models.FieldIsUsed: checkBool,
}

// ValidateRecord checks field count, names, order and per-field
// parseability of a raw record.
func ValidateRecord(record models.RawRecord) error {
	if len(record) == 0 {
		return apperrors.NewFormatError("record is empty")
	}
	if len(record) != RecordFieldCount {
		return apperrors.NewFormatError(
			fmt.Sprintf("record has %d fields, expected %d", len(record), RecordFieldCount))
	}

	for i, field := range models.Fields() {
		group := record[i]
		name := field.String()
		if group.Name() != name {
			return apperrors.NewFieldFormatError(name,
				fmt.Sprintf("expected field %q at position %d, got %q", name, i, group.Name()))
		}

		if field == models.FieldFeatures {
			if len(group) < 2 {
				return apperrors.NewFieldFormatError(name, "features must contain at least one value")
			}
			for _, feature := range group.Values() {
				if err := models.CheckText(feature); err != nil {
					return apperrors.NewFieldFormatError(name, err.Error())
				}
			}
			continue
		}

		if len(group) != 2 {
			return apperrors.NewFieldFormatError(name,
				fmt.Sprintf("expected exactly one value, got %d", len(group)-1))
		}
		if check, ok := recordChecks[field]; ok {
			if err := check(group[1]); err != nil {
				return apperrors.NewFieldFormatError(name, err.Error())
			}
		}
	}
	return nil
}

// ValidateCar re-checks an entity before it is written out.
func ValidateCar(car models.Car) error {
	if car.Brand() == "" {
		return apperrors.NewValidationError(models.FieldBrand.String(), "brand cannot be empty")
	}
	if car.Model() == "" {
		return apperrors.NewValidationError(models.FieldModel.String(), "model cannot be empty")
	}
	if car.FeatureCount() == 0 {
		return apperrors.NewValidationError(models.FieldFeatures.String(), "features cannot be empty")
	}
	return nil
}

// ParseUnsigned parses a validated car_id or year value.
func ParseUnsigned(value string) (uint64, error) {
	return strconv.ParseUint(value, 10, 64)
}

// ParsePrice parses a validated price value.
func ParsePrice(value string) (float64, error) {
	if err := checkPrice(value); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(value, 64)
}

// ParseBool parses a validated is_used value.
func ParseBool(value string) (bool, error) {
	if err := checkBool(value); err != nil {
		return false, err
	}
	return value == "true", nil
}

func checkUnsigned(value string) error {
	if _, err := ParseUnsigned(value); err != nil {
		return fmt.Errorf("%q is not a non-negative integer", value)
	}
	return nil
}

func checkPrice(value string) error {
	if !pricePattern.MatchString(value) {
		return fmt.Errorf("%q is not a decimal number", value)
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return fmt.Errorf("%q is out of range", value)
	}
	return nil
}

func checkBool(value string) error {
	if value != "true" && value != "false" {
		return fmt.Errorf("%q is not a boolean literal", value)
	}
	return nil
}
