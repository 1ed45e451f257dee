package holdem

import "holdemroom-server/pkg/deck"

// NumSeats is the fixed number of seats at a table
const NumSeats = 9

// Seat is an occupied seat at the table
type Seat struct {
	Index    int
	PlayerID string
	Name     string
	Chips    int
	Cards    deck.Hand
	Status   Status

	// RoundBet is the seat's contribution to the current betting round
	RoundBet int
	// TotalBet is the seat's contribution across the whole hand
	TotalBet int

	// orphaned is set when the occupant disconnects mid-hand; the seat is
	// kept so its contribution stays in the pot, and swept at hand end
	orphaned bool
}

// pay moves up to amount chips from the stack into the seat's contribution.
// The amount actually paid is returned; paying the last chip moves an in-hand
// seat to all-in.
func (s *Seat) pay(amount int) int {
	if amount > s.Chips {
		amount = s.Chips
	}

	if amount < 0 {
		amount = 0
	}

	s.Chips -= amount
	s.RoundBet += amount
	s.TotalBet += amount

	if s.Chips == 0 && s.Status == StatusInHand {
		s.Status = StatusAllIn
	}

	return amount
}

// inHand returns true if the seat has not folded out of the current hand
func (s *Seat) inHand() bool {
	return s.Status == StatusInHand || s.Status == StatusAllIn
}

// canAct returns true if the seat still owes decisions this hand
func (s *Seat) canAct() bool {
	return s.Status == StatusInHand && s.Chips > 0
}
