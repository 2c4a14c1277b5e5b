package models

import (
	"time"
)

// RoomPhase represents the current state of a room
type RoomPhase string

const (
	// PhaseLobby indicates a room is waiting for players to join
	PhaseLobby RoomPhase = "lobby"

	// PhaseAssignment indicates players are writing identities for their targets
	PhaseAssignment RoomPhase = "assignment"

	// PhasePlaying indicates a game is in progress
	PhasePlaying RoomPhase = "playing"

	// PhaseFinished indicates a game has been completed
	PhaseFinished RoomPhase = "finished"
)

// Settings holds the per-room game settings
type Settings struct {
	// TurnDuration is how long each guesser gets per turn
	TurnDuration time.Duration

	// GuessLockDuration is how long guessing is disabled after a wrong guess
	GuessLockDuration time.Duration

	// MinPlayers is the minimum number of players required to start
	MinPlayers int

	// MaxPlayers is the maximum number of players allowed in a room
	MaxPlayers int
}

// Room represents a single game session
type Room struct {
	// Code is the unique six-character join code for the room
	Code string

	// HostID is the player ID of the current host
	HostID string

	// Phase is the current state of the room
	Phase RoomPhase

	// Order is the turn order over player IDs. Before assignment it reflects
	// join order; after assignment it is the shuffled sequence that also
	// defines the target chain.
	Order []string

	// Players maps player ID to player state
	Players map[string]*Player

	// History is the append-only record of every question asked
	History []*Question

	// Turn is the active turn state. Nil outside the playing phase.
	Turn *TurnState

	// Standings is the final ranking, populated when the room finishes
	Standings []*RankEntry

	// Settings are the game settings for this room
	Settings Settings

	// CreatedAt is when the room was created
	CreatedAt time.Time

	// UpdatedAt is when the room state last changed
	UpdatedAt time.Time
}
