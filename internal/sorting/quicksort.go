// Package sorting orders cars by a single field with a Lomuto quicksort.
package sorting

import (
	"cars-info-processing/internal/models"
)

// ByField returns a copy of cars ordered by field. Ties may come out in any
// order.
func ByField(cars []models.Car, ascending bool, field models.Field) ([]models.Car, error) {
	if err := field.Validate(); err != nil {
		return nil, err
	}
	sorted := make([]models.Car, len(cars))
	copy(sorted, cars)

	less := func(a, b models.Car) bool {
		c := field.Compare(a, b)
		if ascending {
			return c < 0
		}
		return c > 0
	}
	quickSort(sorted, less)
	return sorted, nil
}

// ByName resolves a user-supplied field name before sorting.
func ByName(cars []models.Car, ascending bool, name string) ([]models.Car, error) {
	field, err := models.ParseField(name)
	if err != nil {
		return nil, err
	}
	return ByField(cars, ascending, field)
}

type span struct{ left, right int }

// quickSort keeps pending partitions on an explicit stack and always handles
// the smaller side first, so the stack holds at most log2(n) spans.
func quickSort(data []models.Car, before func(a, b models.Car) bool) {
	stack := []span{{0, len(data) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for s.left < s.right {
			p := partition(data, s.left, s.right, before)
			if p-s.left < s.right-p {
				stack = append(stack, span{p + 1, s.right})
				s.right = p - 1
			} else {
				stack = append(stack, span{s.left, p - 1})
				s.left = p + 1
			}
		}
	}
}

// partition uses data[right] as the pivot.
func partition(data []models.Car, left, right int, before func(a, b models.Car) bool) int {
	pivot := data[right]
	i := left - 1
	for j := left; j < right; j++ {
		if before(data[j], pivot) {
			i++
			data[i], data[j] = data[j], data[i]
		}
	}
	data[i+1], data[right] = data[right], data[i+1]
	return i + 1
}
