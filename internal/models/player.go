package models

import (
	"time"
)

// Player represents a player's state within a room
type Player struct {
	// ID is the player's identifier, equal to their connection identifier
	// at the time they joined
	ID string

	// Name is the player's display name
	Name string

	// AvatarRef is an optional reference to the player's avatar image
	AvatarRef string

	// TargetID is the ID of the player this player assigns an identity to.
	// The relation forms a single cycle over the room once assignment runs.
	TargetID string

	// Identity is the identity assigned to this player by whoever targets
	// them. Nil until that player submits.
	Identity *Identity

	// HasSubmitted indicates the player has submitted an identity for
	// their target
	HasSubmitted bool

	// HasGuessed indicates the player has correctly guessed their own identity
	HasGuessed bool

	// TurnsToGuess is the number of questions this player has asked. It is
	// the scoring metric for the final ranking.
	TurnsToGuess int

	// Connected indicates the player currently has a live connection.
	// During play a departing player is flagged instead of removed, so the
	// turn order and target chain stay intact.
	Connected bool

	// GuessLockUntil disables guessing while the current time is before it
	GuessLockUntil time.Time

	// ForfeitOrder is 0 for active players. A positive value records the
	// order in which players gave up.
	ForfeitOrder int

	// JoinedAt is when the player joined the room
	JoinedAt time.Time
}
