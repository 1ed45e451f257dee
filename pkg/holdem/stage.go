package holdem

import "encoding/json"

// Stage represents where the hand is in its lifecycle
type Stage int

// constants for Stage
const (
	StageLobby Stage = iota
	StagePreflop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
)

func (s Stage) String() string {
	switch s {
	case StageLobby:
		return "lobby"
	case StagePreflop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}

// isBettingStage returns true for the four betting rounds
func (s Stage) isBettingStage() bool {
	return s == StagePreflop || s == StageFlop || s == StageTurn || s == StageRiver
}
