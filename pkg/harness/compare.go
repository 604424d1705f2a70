package harness

import (
	"math"

	"github.com/Sumatoshi-tech/valley/pkg/testcase"
)

// Mismatch describes one result that differs from its expected value.
type Mismatch struct {
	// Err is the error the operation failed with, if any.
	Err error
	// Op is the operation that produced the result.
	Op testcase.Operation
	// Result is the 0-based index among result-producing operations.
	Result   int
	Expected float64
	Got      float64
}

// Compare checks got against want element by element. A length difference
// fails the comparison outright and reports no per-element mismatches.
// tolerance is the largest accepted absolute difference; zero means exact.
func Compare(want []float64, got []Step, tolerance float64) (mismatches []Mismatch, countMismatch bool) {
	if len(want) != len(got) {
		return nil, true
	}

	for i, step := range got {
		if step.Err == nil && withinTolerance(want[i], step.Value, tolerance) {
			continue
		}

		mismatches = append(mismatches, Mismatch{
			Err:      step.Err,
			Op:       step.Op,
			Result:   i,
			Expected: want[i],
			Got:      step.Value,
		})
	}

	return mismatches, false
}

func withinTolerance(want, got, tolerance float64) bool {
	if want == got {
		return true
	}

	if math.IsNaN(want) || math.IsNaN(got) {
		return false
	}

	return math.Abs(want-got) <= tolerance
}
