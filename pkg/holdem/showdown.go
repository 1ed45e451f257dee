package holdem

import (
	"holdemroom-server/pkg/poker/handrank"
	"holdemroom-server/pkg/poker/sidepot"

	"github.com/sirupsen/logrus"
)

// ResultReason says how a hand ended
type ResultReason string

// result reasons
const (
	ReasonShowdown     ResultReason = "showdown"
	ReasonSinglePlayer ResultReason = "singlePlayerRemaining"
)

// PotResult is the settlement of one pot
type PotResult struct {
	Amount  int         `json:"amount"`
	Winners []int       `json:"winners"`
	Splits  map[int]int `json:"splits"`
}

// HandResult is the settlement of a whole hand
type HandResult struct {
	Reason ResultReason `json:"reason"`
	Pots   []*PotResult `json:"pots"`
}

// resolveShowdown partitions the pot from the per-seat contributions, ranks
// the live hands for each pot, and pays the winners
func (g *Game) resolveShowdown() {
	g.assertPotBalance()

	contributions := make(map[int]int)
	for _, seat := range g.seats {
		if seat != nil {
			contributions[seat.Index] = seat.TotalBet
		}
	}

	pots := sidepot.Partition(contributions)
	results := make([]*PotResult, 0, len(pots))

	for _, pot := range pots {
		strengths := make(map[int]handrank.Strength)
		for _, index := range pot.Eligible {
			seat := g.seats[index]
			if seat == nil || !seat.inHand() {
				continue
			}

			cards := append(seat.Cards.Clone(), g.community...)
			strengths[index] = g.ranker.Rank(cards)
		}

		// every pot layer came from a contributing seat, so an empty set
		// here should be impossible; guard anyway
		if len(strengths) == 0 {
			continue
		}

		winners := handrank.Winners(strengths)
		splits := splitPot(pot.Amount, winners)
		for winner, amount := range splits {
			g.seats[winner].Chips += amount
		}

		results = append(results, &PotResult{
			Amount:  pot.Amount,
			Winners: winners,
			Splits:  splits,
		})

		g.log.WithFields(logrus.Fields{"amount": pot.Amount, "winners": winners}).Info("pot awarded")
	}

	g.finishHand(&HandResult{
		Reason: ReasonShowdown,
		Pots:   results,
	})
}

// splitPot divides a pot among tied winners using floor division; the odd
// chips go to the lowest winning seat index so the totals stay exact.
// The winners slice must be in ascending order.
func splitPot(amount int, winners []int) map[int]int {
	share := amount / len(winners)
	remainder := amount % len(winners)

	splits := make(map[int]int, len(winners))
	for i, winner := range winners {
		splits[winner] = share
		if i == 0 {
			splits[winner] += remainder
		}
	}

	return splits
}

// finishHand publishes the result and returns the table to the lobby
func (g *Game) finishHand(result *HandResult) {
	g.lastResult = result
	g.stage = StageLobby
	g.nextStage = nil
	g.deck = nil
	g.community = nil
	g.pot = 0
	g.currentBet = 0
	g.actionAt = -1
	g.pending.clear()

	for index, seat := range g.seats {
		if seat == nil {
			continue
		}

		if seat.orphaned {
			g.seats[index] = nil
			continue
		}

		seat.Cards = nil
		seat.RoundBet = 0
		seat.TotalBet = 0
		if seat.Chips > 0 {
			seat.Status = StatusWaiting
		} else {
			seat.Status = StatusSittingOut
		}
	}
}
