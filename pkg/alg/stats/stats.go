// Package stats provides small numeric summaries over result series.
package stats

import (
	"cmp"
	"math"
)

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return Sum(values) / float64(len(values))
}

// Max returns the largest element in values.
// Returns the zero value of T for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	result := values[0]

	for _, v := range values[1:] {
		if v > result {
			result = v
		}
	}

	return result
}

// Sum returns the sum of all elements in values.
func Sum[T cmp.Ordered](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}

// AbsDeviations returns |got[i]-want[i]| for the common prefix of both
// series. NaN on either side yields +Inf so it dominates any maximum.
func AbsDeviations(want, got []float64) []float64 {
	n := min(len(want), len(got))
	out := make([]float64, n)

	for i := range n {
		if math.IsNaN(want[i]) || math.IsNaN(got[i]) {
			out[i] = math.Inf(1)

			continue
		}

		out[i] = math.Abs(got[i] - want[i])
	}

	return out
}
