package valley

import "github.com/Sumatoshi-tech/valley/pkg/safeconv"

// handle addresses a node in the arena. The zero handle is the nil sentinel.
type handle uint32

const nilHandle handle = 0

// node is one landform: a height plus its neighbour links.
type node struct {
	height int
	prev   handle
	next   handle
}

// sequence is a doubly linked list of heights backed by an arena.
// Slot 0 is reserved so that the zero handle means "no node".
// Released slots are recycled through the free list.
type sequence struct {
	nodes []node
	free  []handle
	head  handle
	tail  handle
	size  int
}

func newSequence(capacity int) sequence {
	nodes := make([]node, 1, capacity+1)

	return sequence{nodes: nodes}
}

// alloc stores a detached node and returns its handle.
func (s *sequence) alloc(height int) handle {
	if n := len(s.free); n > 0 {
		h := s.free[n-1]
		s.free = s.free[:n-1]
		s.nodes[h] = node{height: height}

		return h
	}

	s.nodes = append(s.nodes, node{height: height})

	return handle(safeconv.MustIntToUint32(len(s.nodes) - 1))
}

// pushBack appends a height at the tail.
func (s *sequence) pushBack(height int) handle {
	h := s.alloc(height)

	if s.tail == nilHandle {
		s.head, s.tail = h, h
	} else {
		s.nodes[h].prev = s.tail
		s.nodes[s.tail].next = h
		s.tail = h
	}

	s.size++

	return h
}

// insertBefore links a new height immediately before at.
func (s *sequence) insertBefore(at handle, height int) handle {
	h := s.alloc(height)
	prev := s.nodes[at].prev

	s.nodes[h].prev = prev
	s.nodes[h].next = at
	s.nodes[at].prev = h

	if prev == nilHandle {
		s.head = h
	} else {
		s.nodes[prev].next = h
	}

	s.size++

	return h
}

// remove unlinks h, releases its slot and returns its former neighbours.
func (s *sequence) remove(h handle) (prev, next handle) {
	prev, next = s.nodes[h].prev, s.nodes[h].next

	if prev == nilHandle {
		s.head = next
	} else {
		s.nodes[prev].next = next
	}

	if next == nilHandle {
		s.tail = prev
	} else {
		s.nodes[next].prev = prev
	}

	s.nodes[h] = node{}
	s.free = append(s.free, h)
	s.size--

	return prev, next
}

func (s *sequence) height(h handle) int { return s.nodes[h].height }

func (s *sequence) next(h handle) handle { return s.nodes[h].next }

func (s *sequence) prev(h handle) handle { return s.nodes[h].prev }

// isValley reports whether h is strictly lower than each neighbour it has.
// A lone node is trivially a valley.
func (s *sequence) isValley(h handle) bool {
	n := s.nodes[h]

	if n.prev != nilHandle && n.height >= s.nodes[n.prev].height {
		return false
	}

	if n.next != nilHandle && n.height >= s.nodes[n.next].height {
		return false
	}

	return true
}

// heights returns the stored heights in sequence order.
func (s *sequence) heights() []int {
	out := make([]int, 0, s.size)

	for h := s.head; h != nilHandle; h = s.nodes[h].next {
		out = append(out, s.nodes[h].height)
	}

	return out
}
