package parser

import (
	"testing"

	apperrors "cars-info-processing/internal/errors"
	"cars-info-processing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quotedInput = `[{"car_id":"1","brand":"Toyota","model":"Corolla","year":"2020","price":"15000.5","is_used":"false","features":["gps","ac"]}]`

func TestParse_QuotedValues(t *testing.T) {
	records, err := Parse(quotedInput)
	require.NoError(t, err)
	require.Len(t, records, 1)

	expected := models.RawRecord{
		{"car_id", "1"},
		{"brand", "Toyota"},
		{"model", "Corolla"},
		{"year", "2020"},
		{"price", "15000.5"},
		{"is_used", "false"},
		{"features", "gps", "ac"},
	}
	assert.Equal(t, expected, records[0])
}

func TestParse_UnquotedValuesWithWhitespace(t *testing.T) {
	input := `[
  {"car_id": 1, "brand": "Land Rover", "model": "Defender", "year": 2019, "price": 45000.75, "is_used": true, "features": ["4wd", "winch"]},
  {
    "car_id": 2,
    "brand": "Honda",
    "model": "Civic",
    "year": 2018,
    "price": 9000,
    "is_used": false,
    "features": ["ac"]
  }
]`
	records, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, models.RawRecord{
		{"car_id", "1"},
		{"brand", "Land Rover"},
		{"model", "Defender"},
		{"year", "2019"},
		{"price", "45000.75"},
		{"is_used", "true"},
		{"features", "4wd", "winch"},
	}, records[0])
	assert.Equal(t, models.FieldGroup{"price", "9000"}, records[1][4])
	assert.Equal(t, models.FieldGroup{"features", "ac"}, records[1][6])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{"empty", "", apperrors.ErrEmptyInput},
		{"whitespace", "  \n\t", apperrors.ErrEmptyInput},
		{"not an array", `{"car_id":1,"features":["a"]}`, apperrors.ErrFormat},
		{"empty array", `[]`, apperrors.ErrFormat},
		{"trailing garbage", quotedInput + "x", apperrors.ErrFormat},
		{"object without list", `[{"car_id":1,"brand":"A","model":"B","year":1,"price":1,"is_used":true}]`, apperrors.ErrFormat},
		{"one of two objects without list", `[{"car_id":1,"features":["a"]},{"car_id":2}]`, apperrors.ErrFormat},
		{"nested object", `[{"car_id":{"x":1},"features":["a"]}]`, apperrors.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Nil(t, records)
		})
	}
}

func TestParseRecord_MustStartWithBrace(t *testing.T) {
	_, err := ParseRecord(`"car_id":1}`)
	assert.ErrorIs(t, err, apperrors.ErrFormat)

	_, err = ParseRecord("")
	assert.ErrorIs(t, err, apperrors.ErrEmptyInput)

	record, err := ParseRecord("  {}")
	require.NoError(t, err)
	assert.Empty(t, record)
}

func TestParseRecord_EmptyFeatureList(t *testing.T) {
	record, err := ParseRecord(`{"car_id":1,"brand":"A","model":"B","year":1,"price":1,"is_used":true,"features":[]}`)
	require.NoError(t, err)
	require.Len(t, record, 7)
	assert.Equal(t, models.FieldGroup{"features"}, record[6])
}

func TestParseRecord_FieldAfterListIsKept(t *testing.T) {
	record, err := ParseRecord(`{"car_id":1,"features":["a"],"color":"red"}`)
	require.NoError(t, err)
	assert.Equal(t, models.RawRecord{
		{"car_id", "1"},
		{"features", "a"},
		{"color", "red"},
	}, record)
}

func TestParseRecord_LiteralBeforeClosingBrace(t *testing.T) {
	record, err := ParseRecord(`{"car_id":1,"features":["a"],"year":2020}`)
	require.NoError(t, err)
	assert.Equal(t, models.RawRecord{
		{"car_id", "1"},
		{"features", "a"},
		{"year", "2020"},
	}, record)
}

func TestParseRecord_StopsAtClosingBrace(t *testing.T) {
	record, err := ParseRecord(`{"brand":"A"} "model":"B"}`)
	require.NoError(t, err)
	assert.Equal(t, models.RawRecord{{"brand", "A"}}, record)
}
