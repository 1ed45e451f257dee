package holdem

import "encoding/json"

// Status is the status of a seat
type Status int

// constants for Status
const (
	StatusEmpty Status = iota
	StatusWaiting
	StatusInHand
	StatusFolded
	StatusAllIn
	StatusSittingOut
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusWaiting:
		return "waiting"
	case StatusInHand:
		return "in-hand"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "all-in"
	case StatusSittingOut:
		return "sitting-out"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}
