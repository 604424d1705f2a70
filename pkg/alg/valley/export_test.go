package valley

import "fmt"

// CheckInvariants recomputes the first valley and its prefix by a linear
// scan and compares them with the incrementally maintained state.
func (t *Traveler) CheckInvariants() error {
	if err := t.seq.checkLinks(); err != nil {
		return err
	}

	if t.seq.size == 0 {
		if t.valley != nilHandle || t.prefixSum != 0 || t.prefixCount != 0 {
			return fmt.Errorf("empty landscape with valley=%d sum=%d count=%d",
				t.valley, t.prefixSum, t.prefixCount)
		}

		return nil
	}

	var (
		sum   int64
		count int
		want  = t.seq.tail
	)

	for h := t.seq.head; h != nilHandle; h = t.seq.next(h) {
		sum += int64(t.seq.height(h))
		count++

		if t.seq.isValley(h) {
			want = h

			break
		}
	}

	if t.valley != want {
		return fmt.Errorf("valley handle %d, scan found %d", t.valley, want)
	}

	if sum != t.prefixSum || count != t.prefixCount {
		return fmt.Errorf("prefix (%d, %d), scan found (%d, %d)", t.prefixSum, t.prefixCount, sum, count)
	}

	return nil
}

func (s *sequence) checkLinks() error {
	count := 0
	prev := nilHandle

	for h := s.head; h != nilHandle; h = s.nodes[h].next {
		if s.nodes[h].prev != prev {
			return fmt.Errorf("node %d: prev %d, want %d", h, s.nodes[h].prev, prev)
		}

		prev = h
		count++
	}

	if prev != s.tail {
		return fmt.Errorf("tail %d, walk ended at %d", s.tail, prev)
	}

	if count != s.size {
		return fmt.Errorf("size %d, walk counted %d", s.size, count)
	}

	return nil
}

// ArenaSlots returns the number of allocated arena slots, sentinel excluded.
func (t *Traveler) ArenaSlots() int {
	return len(t.seq.nodes) - 1
}
