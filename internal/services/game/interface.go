package game

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/tmcfarlane/whoami/internal/services/game Service

// Service defines the interface for the game engine
type Service interface {
	// CreateRoom creates a new room with the caller as host
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom adds a player to an existing room, or reconnects a member
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// LeaveRoom removes a player from their room, or flags them
	// disconnected while a game is in progress
	LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error)

	// GetRoom looks up the room a player belongs to
	GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error)

	// StartAssignment moves a lobby into the assignment phase and builds
	// the circular target chain
	StartAssignment(ctx context.Context, input *StartAssignmentInput) (*StartAssignmentOutput, error)

	// SubmitAssignment records the identity a player wrote for their target
	SubmitAssignment(ctx context.Context, input *SubmitAssignmentInput) (*SubmitAssignmentOutput, error)

	// StartGame moves a room into play and schedules the first turn
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// AskQuestion submits a question from the active guesser
	AskQuestion(ctx context.Context, input *AskQuestionInput) (*AskQuestionOutput, error)

	// SubmitVote answers the current question
	SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error)

	// MakeGuess evaluates the active guesser's identity guess
	MakeGuess(ctx context.Context, input *MakeGuessInput) (*MakeGuessOutput, error)

	// PassTurn ends the active guesser's turn without penalty
	PassTurn(ctx context.Context, input *PassTurnInput) (*PassTurnOutput, error)

	// Forfeit reveals the active guesser's identity and ends their game
	Forfeit(ctx context.Context, input *ForfeitInput) (*ForfeitOutput, error)

	// HandleDisconnect processes a dropped connection
	HandleDisconnect(ctx context.Context, input *HandleDisconnectInput) (*HandleDisconnectOutput, error)
}
