package game

import (
	"time"

	"github.com/tmcfarlane/whoami/internal/common/clock"
	"github.com/tmcfarlane/whoami/internal/common/shuffle"
	"github.com/tmcfarlane/whoami/internal/common/uuid"
	"github.com/tmcfarlane/whoami/internal/models"
	archiveRepo "github.com/tmcfarlane/whoami/internal/repositories/archive"
)

// Default game settings
const (
	DefaultTurnDuration      = 45 * time.Second
	DefaultGuessLockDuration = 10 * time.Second
	DefaultMinPlayers        = 3
	DefaultMaxPlayers        = 12
)

// roomCodeLength is the length of generated room codes
const roomCodeLength = 6

// roomCodeChars are the characters used for generating room codes,
// excluding visually ambiguous ones (0/O, 1/I)
const roomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GuessResult is the outcome of a guess attempt
type GuessResult string

const (
	// GuessResultCorrect indicates the guess matched the player's identity
	GuessResultCorrect GuessResult = "correct"

	// GuessResultIncorrect indicates the guess missed and a lock was applied
	GuessResultIncorrect GuessResult = "incorrect"

	// GuessResultLocked indicates guessing is still disabled by an earlier
	// wrong guess
	GuessResultLocked GuessResult = "locked"
)

// TimeoutEvent describes a turn advance that originated from the room's own
// timer rather than from a player action
type TimeoutEvent struct {
	// RoomCode identifies the room whose timer fired
	RoomCode string

	// Room is a snapshot of the room after the advance
	Room *models.Room

	// TimedOutPlayerID is the guesser whose turn expired
	TimedOutPlayerID string

	// Finished indicates the advance ended the game
	Finished bool
}

// TimeoutNotifier receives timeout-originated turn advances. The transport
// layer implements it to tell clients the turn changed without any of them
// having acted.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/tmcfarlane/whoami/internal/services/game TimeoutNotifier
type TimeoutNotifier interface {
	TurnTimedOut(event *TimeoutEvent)
}

// Config holds configuration for the game service
type Config struct {
	// TurnDuration is how long each guesser gets per turn
	TurnDuration time.Duration

	// GuessLockDuration is the penalty lock applied after a wrong guess
	GuessLockDuration time.Duration

	// MinPlayers is the minimum number of players required to start a game
	MinPlayers int

	// MaxPlayers is the maximum number of players per room
	MaxPlayers int

	// Repository dependencies
	ArchiveRepo archiveRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Shuffler      shuffle.Shuffler
}

// CreateRoomInput contains parameters for creating a new room
type CreateRoomInput struct {
	// HostID is the connection-derived identifier of the creating player
	HostID string

	// HostName is the display name of the creating player
	HostName string

	// AvatarRef is an optional avatar reference for the host
	AvatarRef string
}

// CreateRoomOutput contains the result of creating a new room
type CreateRoomOutput struct {
	// RoomCode is the join code for the created room
	RoomCode string

	// Room is a snapshot of the room after creation
	Room *models.Room
}

// JoinRoomInput contains parameters for joining a room
type JoinRoomInput struct {
	// RoomCode is the join code of the room
	RoomCode string

	// PlayerID is the connection-derived identifier of the joining player
	PlayerID string

	// PlayerName is the display name of the joining player
	PlayerName string

	// AvatarRef is an optional avatar reference
	AvatarRef string
}

// JoinRoomOutput contains the result of joining a room
type JoinRoomOutput struct {
	// Room is a snapshot of the room after the join
	Room *models.Room

	// Rejoined indicates the player was already a member and has
	// reconnected rather than joined fresh
	Rejoined bool
}

// LeaveRoomInput contains parameters for leaving a room
type LeaveRoomInput struct {
	// PlayerID is the departing player
	PlayerID string
}

// LeaveRoomOutput contains the result of leaving a room
type LeaveRoomOutput struct {
	// RoomCode is the room the player left
	RoomCode string

	// Room is a snapshot of the room after the departure. Nil when the
	// room was destroyed.
	Room *models.Room

	// Removed indicates the player's entry left the room. False for a
	// PLAYING-phase departure, which only flips the connected flag.
	Removed bool

	// RoomClosed indicates the departure destroyed the room
	RoomClosed bool

	// NewHostID is set when host role transferred to another player
	NewHostID string

	// TurnAdvanced indicates the departure ended the active turn
	TurnAdvanced bool

	// Finished indicates the departure ended the game
	Finished bool
}

// GetRoomInput contains parameters for looking up a player's room
type GetRoomInput struct {
	// PlayerID is the player whose room is looked up
	PlayerID string
}

// GetRoomOutput contains the result of a room lookup
type GetRoomOutput struct {
	// Room is a snapshot of the player's current room
	Room *models.Room
}

// StartAssignmentInput contains parameters for starting the assignment phase
type StartAssignmentInput struct {
	// PlayerID is the requesting player. Must be the host.
	PlayerID string
}

// StartAssignmentOutput contains the result of starting the assignment phase
type StartAssignmentOutput struct {
	// Room is a snapshot of the room after the transition
	Room *models.Room
}

// SubmitAssignmentInput contains the identity a player writes for their target
type SubmitAssignmentInput struct {
	// PlayerID is the submitting player
	PlayerID string

	// DisplayName is the primary name of the identity
	DisplayName string

	// Aliases are alternate accepted names
	Aliases []string

	// ImageRef is an optional picture reference for the identity
	ImageRef string
}

// SubmitAssignmentOutput contains the result of submitting an assignment
type SubmitAssignmentOutput struct {
	// Room is a snapshot of the room after the submission
	Room *models.Room

	// AllSubmitted indicates every player has now submitted
	AllSubmitted bool
}

// StartGameInput contains parameters for starting play
type StartGameInput struct {
	// PlayerID is the requesting player. Must be the host.
	PlayerID string
}

// StartGameOutput contains the result of starting play
type StartGameOutput struct {
	// Room is a snapshot of the room after the transition
	Room *models.Room
}

// AskQuestionInput contains parameters for asking a question
type AskQuestionInput struct {
	// PlayerID is the asking player. Must be the active guesser.
	PlayerID string

	// Text is the question text
	Text string
}

// AskQuestionOutput contains the result of asking a question
type AskQuestionOutput struct {
	// Question is the created question
	Question *models.Question

	// Room is a snapshot of the room after the question was asked
	Room *models.Room
}

// SubmitVoteInput contains parameters for voting on the current question
type SubmitVoteInput struct {
	// PlayerID is the voting player
	PlayerID string

	// QuestionID must match the current question
	QuestionID string

	// Vote is the answer given
	Vote models.VoteType
}

// SubmitVoteOutput contains the result of a vote
type SubmitVoteOutput struct {
	// Question is the current question with the updated tally
	Question *models.Question

	// Room is a snapshot of the room after the vote
	Room *models.Room
}

// MakeGuessInput contains parameters for guessing one's own identity
type MakeGuessInput struct {
	// PlayerID is the guessing player. Must be the active guesser.
	PlayerID string

	// Text is the free-text guess
	Text string
}

// MakeGuessOutput contains the result of a guess
type MakeGuessOutput struct {
	// Result is the outcome of the guess
	Result GuessResult

	// LockExpiresAt is set for incorrect and locked results so callers can
	// show a countdown
	LockExpiresAt time.Time

	// Identity is the revealed identity on a correct guess
	Identity *models.Identity

	// TurnAdvanced indicates the guess ended the turn
	TurnAdvanced bool

	// Finished indicates the guess ended the game
	Finished bool

	// Room is a snapshot of the room after the guess
	Room *models.Room
}

// PassTurnInput contains parameters for passing the turn
type PassTurnInput struct {
	// PlayerID is the passing player. Must be the active guesser.
	PlayerID string
}

// PassTurnOutput contains the result of passing
type PassTurnOutput struct {
	// Finished indicates the pass ended the game
	Finished bool

	// Room is a snapshot of the room after the pass
	Room *models.Room
}

// ForfeitInput contains parameters for giving up
type ForfeitInput struct {
	// PlayerID is the forfeiting player. Must be the active guesser.
	PlayerID string
}

// ForfeitOutput contains the result of forfeiting
type ForfeitOutput struct {
	// Identity is the forfeiting player's revealed identity
	Identity *models.Identity

	// ForfeitOrder is the rank the forfeit was assigned
	ForfeitOrder int

	// Finished indicates the forfeit ended the game
	Finished bool

	// Room is a snapshot of the room after the forfeit
	Room *models.Room
}

// HandleDisconnectInput contains parameters for a dropped connection
type HandleDisconnectInput struct {
	// PlayerID is the player whose connection dropped
	PlayerID string
}

// HandleDisconnectOutput contains the result of a disconnect
type HandleDisconnectOutput struct {
	// RoomCode is the room the player was in
	RoomCode string

	// Room is a snapshot of the room after the disconnect. Nil when the
	// room was destroyed.
	Room *models.Room

	// Removed indicates the player's entry left the room. False for a
	// PLAYING-phase disconnect, which only flips the connected flag.
	Removed bool

	// RoomClosed indicates the disconnect destroyed the room
	RoomClosed bool

	// NewHostID is set when host role transferred to another player
	NewHostID string

	// TurnAdvanced indicates the disconnect ended the active turn
	TurnAdvanced bool

	// Finished indicates the disconnect ended the game
	Finished bool
}
