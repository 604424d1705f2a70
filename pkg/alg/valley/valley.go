// Package valley tracks the first valley of a mutable landscape of integer
// heights. A valley is a height strictly lower than each neighbour it has;
// the first valley is the leftmost one.
//
// A Traveler keeps a handle to the first valley together with the sum and
// count of heights from the head through that valley. Insert and Remove
// only re-examine the nodes whose neighbours changed and, when the valley
// moves right, walk forward over heights that were outside the prefix.
// First is O(1).
//
// A Traveler is not safe for concurrent use.
package valley

import "errors"

// ErrEmptyLandscape is returned by First and Remove when no heights remain.
var ErrEmptyLandscape = errors.New("valley: landscape is empty")

// Traveler is a landscape with an incrementally maintained first valley.
type Traveler struct {
	seq sequence

	// valley is the first valley, nilHandle iff seq is empty.
	valley handle

	// prefixSum and prefixCount cover head..valley inclusive.
	prefixSum   int64
	prefixCount int

	totalTreasure float64
}

// New builds a Traveler over landscape, preserving its order.
// The input slice is not retained.
func New(landscape []int) *Traveler {
	t := &Traveler{seq: newSequence(len(landscape))}

	for _, height := range landscape {
		t.seq.pushBack(height)
	}

	if t.seq.head != nilHandle {
		t.extendFrom(t.seq.head)
	}

	return t
}

// IsEmpty reports whether the landscape has no heights.
func (t *Traveler) IsEmpty() bool {
	return t.seq.size == 0
}

// Len returns the number of heights in the landscape.
func (t *Traveler) Len() int {
	return t.seq.size
}

// First returns the average height from the head through the first valley.
func (t *Traveler) First() (float64, error) {
	if t.valley == nilHandle {
		return 0, ErrEmptyLandscape
	}

	return t.average(), nil
}

// TotalTreasure returns the sum of every value returned by Remove so far.
func (t *Traveler) TotalTreasure() float64 {
	return t.totalTreasure
}

// Valley returns the height of the first valley and its 1-based position.
// ok is false when the landscape is empty.
func (t *Traveler) Valley() (height, position int, ok bool) {
	if t.valley == nilHandle {
		return 0, 0, false
	}

	return t.seq.height(t.valley), t.prefixCount, true
}

// Heights returns a snapshot of the landscape in order.
func (t *Traveler) Heights() []int {
	return t.seq.heights()
}

// Remove excavates the first valley. It returns the treasure, which is the
// value First reported just before the call, and adds it to the total.
func (t *Traveler) Remove() (float64, error) {
	if t.valley == nilHandle {
		return 0, ErrEmptyLandscape
	}

	treasure := t.average()
	t.totalTreasure += treasure

	removed := t.valley
	t.prefixSum -= int64(t.seq.height(removed))
	t.prefixCount--

	prev, next := t.seq.remove(removed)
	t.valley = nilHandle

	switch {
	case t.seq.size == 0:
		t.prefixSum, t.prefixCount = 0, 0
	case prev != nilHandle && t.seq.isValley(prev):
		// The prefix already ends at prev.
		t.valley = prev
	default:
		t.extendFrom(next)
	}

	return treasure, nil
}

// Insert adds a landform of the given height immediately before the first
// valley, which is where the most recently removed valley stood once the
// prefix has settled. On an empty landscape the height becomes the only one.
func (t *Traveler) Insert(height int) {
	if t.valley == nilHandle {
		t.valley = t.seq.pushBack(height)
		t.prefixSum, t.prefixCount = int64(height), 1

		return
	}

	v := t.valley
	x := t.seq.insertBefore(v, height)
	p := t.seq.prev(x)
	vHeight := int64(t.seq.height(v))

	switch {
	case p != nilHandle && t.seq.isValley(p):
		// Prefix shrinks to end at p, dropping v.
		t.valley = p
		t.prefixSum -= vHeight
		t.prefixCount--
	case t.seq.isValley(x):
		// x takes the slot v used to terminate the prefix.
		t.valley = x
		t.prefixSum += int64(height) - vHeight
	case t.seq.isValley(v):
		t.prefixSum += int64(height)
		t.prefixCount++
	default:
		// height equals v's height: v is no longer strict, so the
		// first valley lies further right.
		t.prefixSum += int64(height)
		t.prefixCount++
		t.extendFrom(t.seq.next(v))
	}
}

func (t *Traveler) average() float64 {
	return float64(t.prefixSum) / float64(t.prefixCount)
}

// extendFrom walks forward from h, adding each visited height to the prefix,
// and settles on the first valley. A walk that runs off the end adopts the
// tail, which only happens when the tail equals its predecessor.
func (t *Traveler) extendFrom(h handle) {
	for ; h != nilHandle; h = t.seq.next(h) {
		t.prefixSum += int64(t.seq.height(h))
		t.prefixCount++

		if t.seq.isValley(h) {
			t.valley = h

			return
		}
	}

	if t.seq.tail == nilHandle {
		panic("valley: walk on empty landscape")
	}

	t.valley = t.seq.tail
}
