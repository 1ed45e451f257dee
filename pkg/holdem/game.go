// Package holdem implements the per-room Texas Hold'em hand-progression engine:
// seats, blinds, betting rounds, turn order, side pots and showdown settlement.
//
// A Game is not safe for concurrent use; the caller must deliver one intent at
// a time (the room run loop serializes this).
package holdem

import (
	"fmt"
	"math"

	"holdemroom-server/pkg/deck"
	"holdemroom-server/pkg/poker/handrank"

	"github.com/sirupsen/logrus"
)

// Options configures a table
type Options struct {
	StartingChips   int
	SmallBlind      int
	BigBlind        int
	BlindInterval   int     // hands between blind escalations; 0 disables
	BlindMultiplier float64 // applied to both blinds on escalation
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		StartingChips:   1000,
		SmallBlind:      10,
		BigBlind:        20,
		BlindInterval:   10,
		BlindMultiplier: 1.5,
	}
}

func validateOptions(opts Options) error {
	if opts.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be > 0")
	}

	if opts.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be > 0")
	}

	if opts.BigBlind < opts.SmallBlind*2 {
		return fmt.Errorf("big blind must be at least twice the small blind")
	}

	if opts.BlindInterval > 0 && opts.BlindMultiplier < 1 {
		return fmt.Errorf("blind multiplier must be >= 1")
	}

	return nil
}

// LastAction records the most recent player action for the state snapshot
type LastAction struct {
	Action string `json:"action"`
	Seat   int    `json:"seat"`
}

// Game is one table running at most one hand at a time
type Game struct {
	opts   Options
	ranker handrank.Ranker
	log    logrus.FieldLogger

	seats      [NumSeats]*Seat
	dealer     int
	handCount  int
	smallBlind int
	bigBlind   int

	deck       *deck.Deck
	community  deck.Hand
	pot        int
	stage      Stage
	currentBet int
	pending    tracker
	actionAt   int
	nextStage  *Stage
	lastAction *LastAction
	lastResult *HandResult

	// shuffleSeed is only set by tests for deterministic deals
	shuffleSeed int64
}

// NewGame returns a new table in the lobby stage.
// A nil ranker falls back to the built-in evaluator.
func NewGame(logger logrus.FieldLogger, ranker handrank.Ranker, opts Options) (*Game, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if ranker == nil {
		ranker = handrank.Evaluator{}
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Game{
		opts:       opts,
		ranker:     ranker,
		log:        logger,
		dealer:     -1,
		actionAt:   -1,
		smallBlind: opts.SmallBlind,
		bigBlind:   opts.BigBlind,
		stage:      StageLobby,
	}, nil
}

// Sit seats a player at the given seat index with the configured starting stack
func (g *Game) Sit(index int, playerID, name string) error {
	if index < 0 || index >= NumSeats {
		return ErrInvalidSeat
	}

	if g.seats[index] != nil {
		return ErrSeatTaken
	}

	if g.seatByPlayer(playerID) != nil {
		return ErrAlreadySeated
	}

	g.seats[index] = &Seat{
		Index:    index,
		PlayerID: playerID,
		Name:     name,
		Chips:    g.opts.StartingChips,
		Status:   StatusWaiting,
	}

	g.log.WithFields(logrus.Fields{"seat": index, "name": name}).Debug("player sat down")
	return nil
}

// Leave vacates the player's seat. If the seat is part of a live hand it is
// folded first and kept (orphaned) until the hand settles, so its contribution
// stays in the pot.
func (g *Game) Leave(playerID string) error {
	seat := g.seatByPlayer(playerID)
	if seat == nil {
		return ErrNotSeated
	}

	if g.stage != StageLobby && (seat.inHand() || seat.TotalBet > 0) {
		wasTurn := g.actionAt == seat.Index
		wasInHand := seat.inHand()
		if wasInHand {
			g.foldSeat(seat)
		}

		seat.PlayerID = ""
		seat.orphaned = true

		if wasInHand {
			g.settleAfterAction(seat.Index, wasTurn)
		}

		return nil
	}

	g.seats[seat.Index] = nil
	return nil
}

// StartHand begins a new hand: advances the button, escalates blinds on
// schedule, deals hole cards and posts the blinds
func (g *Game) StartHand() error {
	if g.stage != StageLobby {
		return ErrHandInProgress
	}

	if g.countFunded() < 2 {
		return ErrNotEnoughPlayers
	}

	g.handCount++
	g.escalateBlinds()
	g.dealer = g.nextSeat(g.dealer, func(s *Seat) bool { return s.Chips > 0 })

	g.lastAction = nil
	g.lastResult = nil
	g.pot = 0
	g.community = nil

	for _, seat := range g.seats {
		if seat == nil {
			continue
		}

		seat.RoundBet = 0
		seat.TotalBet = 0
		seat.Cards = nil
		if seat.Chips > 0 {
			seat.Status = StatusInHand
		} else {
			seat.Status = StatusSittingOut
		}
	}

	g.deck = deck.New()
	g.deck.Shuffle(g.shuffleSeed)

	for i := 0; i < 2; i++ {
		for offset := 1; offset <= NumSeats; offset++ {
			seat := g.seats[(g.dealer+offset)%NumSeats]
			if seat == nil || seat.Status != StatusInHand {
				continue
			}

			seat.Cards.AddCard(g.mustDraw())
		}
	}

	small := g.seats[g.nextSeat(g.dealer, (*Seat).canAct)]
	g.pot += small.pay(g.smallBlind)
	big := g.seats[g.nextSeat(small.Index, (*Seat).canAct)]
	g.pot += big.pay(g.bigBlind)

	g.currentBet = g.bigBlind
	g.stage = StagePreflop

	g.pending.clear()
	for _, seat := range g.seats {
		if seat != nil && seat.canAct() {
			g.pending.add(seat.Index)
		}
	}

	g.actionAt = g.pending.next(big.Index)
	if g.pending.empty() {
		g.scheduleNextStage()
	}

	g.log.WithFields(logrus.Fields{
		"hand":       g.handCount,
		"dealer":     g.dealer,
		"smallBlind": g.smallBlind,
		"bigBlind":   g.bigBlind,
	}).Info("hand started")

	return nil
}

// escalateBlinds bumps the blinds on every (k·N+1)-th hand for k >= 1
func (g *Game) escalateBlinds() {
	interval := g.opts.BlindInterval
	if interval <= 0 || g.handCount <= 1 || (g.handCount-1)%interval != 0 {
		return
	}

	g.smallBlind = int(math.Round(float64(g.smallBlind) * g.opts.BlindMultiplier))
	g.bigBlind = int(math.Round(float64(g.bigBlind) * g.opts.BlindMultiplier))
	if g.bigBlind < g.smallBlind*2 {
		g.bigBlind = g.smallBlind * 2
	}

	g.log.WithFields(logrus.Fields{"smallBlind": g.smallBlind, "bigBlind": g.bigBlind}).Info("blinds escalated")
}

// Blinds returns the current small and big blind
func (g *Game) Blinds() (small, big int) {
	return g.smallBlind, g.bigBlind
}

// Stage returns the current stage of the hand
func (g *Game) Stage() Stage {
	return g.stage
}

// LastResult returns the result of the most recently settled hand, or nil
func (g *Game) LastResult() *HandResult {
	return g.lastResult
}

// SeatOf returns the seat index occupied by the player, or -1
func (g *Game) SeatOf(playerID string) int {
	if seat := g.seatByPlayer(playerID); seat != nil {
		return seat.Index
	}

	return -1
}

// Occupied returns the number of occupied seats
func (g *Game) Occupied() int {
	count := 0
	for _, seat := range g.seats {
		if seat != nil && !seat.orphaned {
			count++
		}
	}

	return count
}

func (g *Game) seatByPlayer(playerID string) *Seat {
	if playerID == "" {
		return nil
	}

	for _, seat := range g.seats {
		if seat != nil && seat.PlayerID == playerID {
			return seat
		}
	}

	return nil
}

// nextSeat returns the index of the first seat after from (cyclic) matching
// the predicate. Panics if no seat matches; callers must guarantee one does.
func (g *Game) nextSeat(from int, match func(*Seat) bool) int {
	for i := 1; i <= NumSeats; i++ {
		index := ((from+i)%NumSeats + NumSeats) % NumSeats
		if seat := g.seats[index]; seat != nil && match(seat) {
			return index
		}
	}

	panic("no seat matches")
}

func (g *Game) countFunded() int {
	count := 0
	for _, seat := range g.seats {
		if seat != nil && seat.Chips > 0 {
			count++
		}
	}

	return count
}

func (g *Game) countInHand() int {
	count := 0
	for _, seat := range g.seats {
		if seat != nil && seat.inHand() {
			count++
		}
	}

	return count
}

// mustDraw draws a card; exhausting the deck mid-hand is a sizing bug
func (g *Game) mustDraw() *deck.Card {
	card, err := g.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("deck exhausted mid-hand: %v", err))
	}

	return card
}

// assertPotBalance verifies the pot cache reconciles with the sum of all
// seat contributions. A mismatch is a chip-accounting bug, not a user error.
func (g *Game) assertPotBalance() {
	total := 0
	for _, seat := range g.seats {
		if seat != nil {
			total += seat.TotalBet
		}
	}

	if total != g.pot {
		panic(fmt.Sprintf("pot mismatch: pot=%d, sum of contributions=%d", g.pot, total))
	}
}
