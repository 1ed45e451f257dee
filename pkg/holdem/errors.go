package holdem

import "errors"

// errors surfaced to the offending player; the room state is never mutated
// when one of these is returned
var (
	ErrHandInProgress   = errors.New("a hand is already in progress")
	ErrNotEnoughPlayers = errors.New("need at least two funded players to start a hand")
	ErrInvalidSeat      = errors.New("invalid seat index")
	ErrSeatTaken        = errors.New("seat is already taken")
	ErrAlreadySeated    = errors.New("you are already seated")
	ErrNotSeated        = errors.New("you are not seated")
	ErrNotYourTurn      = errors.New("it is not your turn")
	ErrIllegalCheck     = errors.New("you cannot check with an active bet")
	ErrRaiseTooSmall    = errors.New("raise must be greater than the current bet")
)
