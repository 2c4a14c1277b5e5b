package messaging

import "context"

// Service is the interface for the messaging service. Every method picks a
// random phrasing so repeated events do not read like a broken record.
type Service interface {
	// GetTimeoutMessage returns an announcement for a turn that ran out
	GetTimeoutMessage(ctx context.Context, input *GetTimeoutMessageInput) (*GetTimeoutMessageOutput, error)

	// GetGuessResultMessage returns a message for a player's guess attempt
	GetGuessResultMessage(ctx context.Context, input *GetGuessResultMessageInput) (*GetGuessResultMessageOutput, error)

	// GetForfeitMessage returns an announcement for a player giving up
	GetForfeitMessage(ctx context.Context, input *GetForfeitMessageInput) (*GetForfeitMessageOutput, error)

	// GetGameOverMessage returns an announcement for the end of a game
	GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error)
}
