package models

import (
	"time"
)

// TurnState represents the active turn. It is replaced wholesale on every
// turn advance, never mutated across turns.
type TurnState struct {
	// GuesserID is the player whose turn it is to ask and guess
	GuesserID string

	// Counter increases by one on every turn advance. Timer callbacks use
	// it to detect that their turn has already ended.
	Counter int

	// StartedAt is when the turn began
	StartedAt time.Time

	// Duration is how long the turn runs before it times out
	Duration time.Duration

	// Question is the current question for this turn, if any
	Question *Question
}
