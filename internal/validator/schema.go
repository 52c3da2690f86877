package validator

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// carListSchema describes the serialized output document.
const carListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": false,
    "required": ["car_id", "brand", "model", "year", "price", "is_used", "features"],
    "properties": {
      "car_id":   {"type": "integer", "minimum": 0},
      "brand":    {"type": "string", "minLength": 1},
      "model":    {"type": "string", "minLength": 1},
      "year":     {"type": "integer", "minimum": 0},
      "price":    {"type": "number", "minimum": 0},
      "is_used":  {"type": "boolean"},
      "features": {"type": "array", "minItems": 1, "items": {"type": "string"}}
    }
  }
}`

type SchemaError struct {
	Field   string
	Message string
}

type SchemaResult struct {
	Valid  bool
	Errors []SchemaError
}

// SchemaValidator checks serialized car lists against the output schema.
type SchemaValidator struct {
	schema *gojsonschema.Schema
	logger *zap.Logger
}

func NewSchemaValidator(logger *zap.Logger) (*SchemaValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(carListSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile car list schema: %w", err)
	}
	return &SchemaValidator{
		schema: schema,
		logger: logger,
	}, nil
}

// ValidateDocument validates a JSON document. A document that is not JSON at
// all returns an error rather than an invalid result.
func (v *SchemaValidator) ValidateDocument(document string) (*SchemaResult, error) {
	result, err := v.schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	validationResult := &SchemaResult{
		Valid:  result.Valid(),
		Errors: make([]SchemaError, 0),
	}

	if !result.Valid() {
		for _, desc := range result.Errors() {
			validationResult.Errors = append(validationResult.Errors, SchemaError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		v.logger.Debug("Document does not match car list schema",
			zap.Int("error_count", len(validationResult.Errors)))
	}

	return validationResult, nil
}
