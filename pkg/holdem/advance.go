package holdem

// scheduleNextStage marks the hand ready to advance. The actual advance is
// deferred: the room schedules Advance() shortly after broadcasting state.
func (g *Game) scheduleNextStage() {
	next := g.stage + 1
	g.nextStage = &next
	g.actionAt = -1
}

// NeedsAdvance returns true if a deferred stage advance is waiting
func (g *Game) NeedsAdvance() bool {
	return g.nextStage != nil
}

// Advance applies a deferred stage transition. Calling it with nothing
// scheduled is a no-op, so a stale timer can never corrupt a newer hand.
func (g *Game) Advance() {
	if g.nextStage == nil {
		return
	}

	stage := *g.nextStage
	g.nextStage = nil

	switch stage {
	case StageFlop:
		g.dealCommunity(3)
		g.openRound(StageFlop)
	case StageTurn:
		g.dealCommunity(1)
		g.openRound(StageTurn)
	case StageRiver:
		g.dealCommunity(1)
		g.openRound(StageRiver)
	case StageShowdown:
		g.stage = StageShowdown
		g.resolveShowdown()
	}
}

func (g *Game) dealCommunity(n int) {
	for i := 0; i < n; i++ {
		g.community.AddCard(g.mustDraw())
	}
}

// openRound starts a fresh betting round. First to act after the flop is the
// next live seat clockwise from the dealer button.
func (g *Game) openRound(stage Stage) {
	g.stage = stage
	g.currentBet = 0

	g.pending.clear()
	for _, seat := range g.seats {
		if seat == nil {
			continue
		}

		seat.RoundBet = 0
		if seat.canAct() {
			g.pending.add(seat.Index)
		}
	}

	g.actionAt = g.pending.next(g.dealer)
	if g.pending.empty() {
		// everyone is all-in; the streets run out with no betting
		g.scheduleNextStage()
	}
}
