package holdem

// tracker is the set of seat indexes still owing an action this betting round.
// Membership and removal are O(1); next() walks the table cyclically.
type tracker struct {
	pending [NumSeats]bool
	count   int
}

func (t *tracker) add(index int) {
	if !t.pending[index] {
		t.pending[index] = true
		t.count++
	}
}

func (t *tracker) remove(index int) {
	if t.pending[index] {
		t.pending[index] = false
		t.count--
	}
}

func (t *tracker) contains(index int) bool {
	return t.pending[index]
}

func (t *tracker) empty() bool {
	return t.count == 0
}

func (t *tracker) clear() {
	*t = tracker{}
}

// next returns the first pending seat strictly after from, wrapping through
// all seats. Returns -1 if no seat is pending.
func (t *tracker) next(from int) int {
	for i := 1; i <= NumSeats; i++ {
		index := ((from+i)%NumSeats + NumSeats) % NumSeats
		if t.pending[index] {
			return index
		}
	}

	return -1
}
