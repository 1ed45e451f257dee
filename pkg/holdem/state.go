package holdem

import "holdemroom-server/pkg/deck"

// SeatState is the public view of one seat
type SeatState struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Chips    int    `json:"chips"`
	Status   Status `json:"status"`
	RoundBet int    `json:"currentBet"`
	TotalBet int    `json:"totalBet"`
}

// State is the public view of the table, safe to broadcast to every member.
// Hole cards are never included; see PrivateState.
type State struct {
	Seats      []*SeatState `json:"seats"`
	Community  deck.Hand    `json:"community"`
	Pot        int          `json:"pot"`
	Stage      Stage        `json:"stage"`
	CurrentBet int          `json:"currentBet"`
	ActionAt   int          `json:"actionAt"`
	Dealer     int          `json:"dealer"`
	SmallBlind int          `json:"smallBlind"`
	BigBlind   int          `json:"bigBlind"`
	HandCount  int          `json:"handCount"`
	LastAction *LastAction  `json:"lastAction"`
	LastResult *HandResult  `json:"lastResult"`
}

// State returns the public snapshot of the table
func (g *Game) State() *State {
	seats := make([]*SeatState, NumSeats)
	for i, seat := range g.seats {
		if seat == nil {
			continue
		}

		seats[i] = &SeatState{
			Index:    seat.Index,
			Name:     seat.Name,
			Chips:    seat.Chips,
			Status:   seat.Status,
			RoundBet: seat.RoundBet,
			TotalBet: seat.TotalBet,
		}
	}

	community := make(deck.Hand, 0, len(g.community))
	community = append(community, g.community...)

	return &State{
		Seats:      seats,
		Community:  community,
		Pot:        g.pot,
		Stage:      g.stage,
		CurrentBet: g.currentBet,
		ActionAt:   g.actionAt,
		Dealer:     g.dealer,
		SmallBlind: g.smallBlind,
		BigBlind:   g.bigBlind,
		HandCount:  g.handCount,
		LastAction: g.lastAction,
		LastResult: g.lastResult,
	}
}

// PrivateState is the per-player view: their seat, hole cards and stack
type PrivateState struct {
	Seat  int       `json:"seat"`
	Cards deck.Hand `json:"cards"`
	Chips int       `json:"chips"`
}

// PrivateState returns the player's private view, or nil if they are not seated
func (g *Game) PrivateState(playerID string) *PrivateState {
	seat := g.seatByPlayer(playerID)
	if seat == nil {
		return nil
	}

	return &PrivateState{
		Seat:  seat.Index,
		Cards: seat.Cards.Clone(),
		Chips: seat.Chips,
	}
}
