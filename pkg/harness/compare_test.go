package harness

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		want      []float64
		got       []Step
		tolerance float64
		wantCount bool
		wantIdx   []int
	}{
		{name: "equal", want: []float64{1, 2}, got: []Step{{Value: 1}, {Value: 2}}},
		{name: "length", want: []float64{1}, got: nil, wantCount: true},
		{name: "differs", want: []float64{1, 2}, got: []Step{{Value: 1}, {Value: 2.5}}, wantIdx: []int{1}},
		{name: "within_tolerance", want: []float64{1}, got: []Step{{Value: 1.05}}, tolerance: 0.1},
		{name: "error_step", want: []float64{1}, got: []Step{{Value: math.NaN(), Err: errBoom}}, wantIdx: []int{0}},
		{name: "nan_never_within", want: []float64{math.NaN()}, got: []Step{{Value: 1}}, tolerance: 10, wantIdx: []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mismatches, countMismatch := Compare(tt.want, tt.got, tt.tolerance)
			assert.Equal(t, tt.wantCount, countMismatch)

			idx := make([]int, 0, len(mismatches))
			for _, m := range mismatches {
				idx = append(idx, m.Result)
			}

			if len(tt.wantIdx) == 0 {
				assert.Empty(t, idx)
			} else {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}
