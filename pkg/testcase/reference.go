package testcase

import (
	"errors"
	"slices"
)

// errReferenceEmpty mirrors the empty-landscape condition of the model.
var errReferenceEmpty = errors.New("reference landscape is empty")

// Reference is a naive landscape model: a plain slice rescanned on every
// call. It shares no code with the valley package and is the oracle for
// generated cases.
type Reference struct {
	heights  []int
	treasure float64
}

// NewReference copies landscape into a new model.
func NewReference(landscape []int) *Reference {
	return &Reference{heights: slices.Clone(landscape)}
}

// firstValley returns the index of the leftmost strict valley, or the last
// index when equal neighbours leave no strict valley. -1 when empty.
func (r *Reference) firstValley() int {
	n := len(r.heights)

	for i, h := range r.heights {
		lowerThanPrev := i == 0 || h < r.heights[i-1]
		lowerThanNext := i == n-1 || h < r.heights[i+1]

		if lowerThanPrev && lowerThanNext {
			return i
		}
	}

	return n - 1
}

// First returns the average of heights[0..firstValley].
func (r *Reference) First() (float64, error) {
	v := r.firstValley()
	if v < 0 {
		return 0, errReferenceEmpty
	}

	var sum int64
	for _, h := range r.heights[:v+1] {
		sum += int64(h)
	}

	return float64(sum) / float64(v+1), nil
}

// Remove deletes the first valley and returns First as it was before.
func (r *Reference) Remove() (float64, error) {
	treasure, err := r.First()
	if err != nil {
		return 0, err
	}

	v := r.firstValley()
	r.heights = slices.Delete(r.heights, v, v+1)
	r.treasure += treasure

	return treasure, nil
}

// Insert places height directly before the first valley.
func (r *Reference) Insert(height int) {
	v := max(r.firstValley(), 0)
	r.heights = slices.Insert(r.heights, v, height)
}

// TotalTreasure returns the sum of all removals.
func (r *Reference) TotalTreasure() float64 {
	return r.treasure
}

// Len returns the number of heights.
func (r *Reference) Len() int {
	return len(r.heights)
}
