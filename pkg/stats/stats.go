// Package stats holds the small numeric helpers shared by the role metrics and
// the partition quality report.
package stats

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is any integer or float type
type Number interface {
	constraints.Integer | constraints.Float
}

// MeanStdDev returns the mean and population standard deviation of values.
// Both are 0 for an empty slice.
func MeanStdDev[T Number](values []T) (mean, stdDev float64) {
	mean, variance := MeanVariance(values)
	return mean, math.Sqrt(variance)
}

// MeanVariance returns the mean and population variance of values
func MeanVariance[T Number](values []T) (mean, variance float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean = sum / float64(len(values))

	var squares float64
	for _, v := range values {
		d := float64(v) - mean
		squares += d * d
	}
	return mean, squares / float64(len(values))
}
