package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrRoomNotFound       GameError = "room not found"
	ErrPlayerNotInRoom    GameError = "player is not in a room"
	ErrRoomFull           GameError = "room is at maximum capacity"
	ErrJoinClosed         GameError = "room is no longer accepting players"
	ErrNotHost            GameError = "only the host may do that"
	ErrNotEnoughPlayers   GameError = "not enough players to start"
	ErrWrongPhase         GameError = "operation is not valid in the current phase"
	ErrAssignmentsPending GameError = "not every player has submitted an identity"
	ErrNoTarget           GameError = "player has no assignment target"
	ErrInvalidIdentity    GameError = "identity display name is required"
	ErrNotYourTurn        GameError = "it is not this player's turn"
	ErrNoCurrentQuestion  GameError = "no question is currently active"
	ErrQuestionMismatch   GameError = "vote does not match the current question"
	ErrOwnQuestion        GameError = "players may not vote on their own question"
	ErrInvalidVote        GameError = "unrecognized vote type"
	ErrNoIdentity         GameError = "no identity has been assigned yet"
	ErrInvalidInput       GameError = "input is missing required fields"
	ErrNilConfig          GameError = "config cannot be nil"
	ErrNilClock           GameError = "clock cannot be nil"
	ErrNilUUIDGenerator   GameError = "UUID generator cannot be nil"
	ErrNilShuffler        GameError = "shuffler cannot be nil"
	ErrNilArchiveRepo     GameError = "archive repository cannot be nil"
)
