package holdem

import (
	"errors"
	"fmt"
)

// ErrTableFull is an error when no seats remain
var ErrTableFull = errors.New("table is full")

// ErrAlreadySeated is an error when the player already has a seat
var ErrAlreadySeated = errors.New("player is already seated")

// ErrHandInProgress is an error when an operation requires an idle table
var ErrHandInProgress = errors.New("a hand is in progress")

// ErrNoHandInProgress is an error when an action requires a live betting round
var ErrNoHandInProgress = errors.New("no hand is in progress")

// ErrNotEnoughPlayers is an error when a hand cannot be started
var ErrNotEnoughPlayers = errors.New("at least two players with chips are required")

// ErrPlayerNotFound is an error when the player is not seated at the table
var ErrPlayerNotFound = errors.New("player is not seated at this table")

// ActionError is a player-facing reason for rejecting an action. The table
// state is untouched when one is returned.
type ActionError string

func (a ActionError) Error() string {
	return string(a)
}

func newActionError(format string, args ...interface{}) ActionError {
	return ActionError(fmt.Sprintf(format, args...))
}

// ErrNotYourTurn is an error when a player acts out of turn
var ErrNotYourTurn = ActionError("it is not your turn")
