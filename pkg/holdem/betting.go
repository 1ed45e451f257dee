package holdem

import (
	"holdemroom-server/pkg/poker/action"

	"github.com/sirupsen/logrus"
)

// Action performs a betting action for the player. The action is rejected
// in full (no state change) unless the player occupies the seat whose turn
// it is and the action is legal.
func (g *Game) Action(playerID string, act action.Action, amount int) error {
	if !g.stage.isBettingStage() || g.actionAt < 0 {
		return ErrNotYourTurn
	}

	seat := g.seats[g.actionAt]
	if seat == nil || seat.PlayerID != playerID {
		return ErrNotYourTurn
	}

	switch act {
	case action.Fold:
		g.foldSeat(seat)

	case action.Check:
		if seat.RoundBet != g.currentBet {
			return ErrIllegalCheck
		}

		g.pending.remove(seat.Index)

	case action.Call:
		g.pot += seat.pay(g.currentBet - seat.RoundBet)
		g.pending.remove(seat.Index)

	case action.Bet, action.Raise:
		target := amount
		if floor := g.currentBet + g.bigBlind; target < floor {
			target = floor
		}

		increment := target - seat.RoundBet
		if increment <= 0 {
			return ErrRaiseTooSmall
		}

		g.pot += seat.pay(increment)
		g.currentBet = seat.RoundBet
		g.reopenAction(seat.Index)

	case action.AllIn:
		g.pot += seat.pay(seat.Chips)
		if seat.RoundBet > g.currentBet {
			// a shove above the bet reopens action for everyone, even when
			// it is short of a full raise increment
			g.currentBet = seat.RoundBet
			g.reopenAction(seat.Index)
		} else {
			g.pending.remove(seat.Index)
		}

	default:
		return ErrNotYourTurn
	}

	g.lastAction = &LastAction{Action: string(act), Seat: seat.Index}
	g.log.WithFields(logrus.Fields{"seat": seat.Index, "action": act}).
		Debugf("%s", act.LogMessage(seat.RoundBet))

	g.settleAfterAction(seat.Index, true)
	return nil
}

// foldSeat removes the seat from the hand and forfeits its hole cards
func (g *Game) foldSeat(seat *Seat) {
	seat.Status = StatusFolded
	seat.Cards = nil
	g.pending.remove(seat.Index)
}

// reopenAction re-admits every other seat that can still act; the raiser
// itself has nothing further to answer
func (g *Game) reopenAction(raiser int) {
	for _, seat := range g.seats {
		if seat != nil && seat.canAct() && seat.Index != raiser {
			g.pending.add(seat.Index)
		}
	}

	g.pending.remove(raiser)
}

// settleAfterAction decides what happens after any seat leaves the pending
// set: early termination, end of the betting round, or pass the turn along
func (g *Game) settleAfterAction(actor int, wasTurn bool) {
	if g.stage == StageLobby {
		return
	}

	if g.countInHand() == 1 {
		g.terminateEarly()
		return
	}

	if g.pending.empty() {
		g.scheduleNextStage()
		return
	}

	if wasTurn {
		g.actionAt = g.pending.next(actor)
	}
}

// terminateEarly awards the whole pot to the sole remaining seat without
// dealing any further cards or revealing hands
func (g *Game) terminateEarly() {
	g.assertPotBalance()

	var winner *Seat
	for _, seat := range g.seats {
		if seat != nil && seat.inHand() {
			winner = seat
			break
		}
	}

	winner.Chips += g.pot

	g.log.WithFields(logrus.Fields{"seat": winner.Index, "amount": g.pot}).Info("hand won uncontested")

	g.finishHand(&HandResult{
		Reason: ReasonSinglePlayer,
		Pots: []*PotResult{{
			Amount:  g.pot,
			Winners: []int{winner.Index},
			Splits:  map[int]int{winner.Index: g.pot},
		}},
	})
}
