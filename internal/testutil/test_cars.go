package testutil

import (
	"fmt"
	"strings"
)

// ValidCarsJSON returns a three car input in the quoted-value style
func ValidCarsJSON() string {
	return `[` +
		`{"car_id":"1","brand":"Toyota","model":"Corolla","year":"2020","price":"15000.5","is_used":"false","features":["gps","ac"]},` +
		`{"car_id":"2","brand":"Honda","model":"Civic","year":"2018","price":"9000.0","is_used":"true","features":["ac"]},` +
		`{"car_id":"3","brand":"Toyota","model":"Camry","year":"2018","price":"12000","is_used":"true","features":["sunroof","abs"]}` +
		`]`
}

// PrettyCarsJSON returns a multi-line input with unquoted numbers and booleans
func PrettyCarsJSON() string {
	return `[
  {
    "car_id": 10,
    "brand": "Land Rover",
    "model": "Defender",
    "year": 2019,
    "price": 45000.75,
    "is_used": true,
    "features": ["winch", "4wd"]
  }
]`
}

// InvalidCarsEmptyFeatures returns an input whose features list is empty
func InvalidCarsEmptyFeatures() string {
	return `[{"car_id":"1","brand":"Toyota","model":"Corolla","year":"2020","price":"15000.5","is_used":"false","features":[]}]`
}

// InvalidCarsBadPrice returns an input whose price is not a number
func InvalidCarsBadPrice() string {
	return `[{"car_id":"1","brand":"Toyota","model":"Corolla","year":"2020","price":"abc","is_used":"false","features":["ac"]}]`
}

// InvalidCarsEmptyBrand returns an input that only fails entity construction
func InvalidCarsEmptyBrand() string {
	return `[{"car_id":"1","brand":"","model":"Corolla","year":"2020","price":"1","is_used":"false","features":["ac"]}]`
}

// GeneratedCarsJSON builds n cars with distinct ids and cycling prices
func GeneratedCarsJSON(n int) string {
	objects := make([]string, 0, n)
	for i := 0; i < n; i++ {
		objects = append(objects, fmt.Sprintf(
			`{"car_id": %d, "brand": "Brand%d", "model": "Model%d", "year": %d, "price": %d.5, "is_used": %t, "features": ["f%d", "a"]}`,
			i, i%7, i%3, 1990+i%30, (i*37)%1000, i%2 == 0, i%4))
	}
	return "[" + strings.Join(objects, ", ") + "]"
}
