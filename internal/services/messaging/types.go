package messaging

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// PreferredTone is the default tone when callers do not ask for one
	PreferredTone MessageTone
}

// GetTimeoutMessageInput contains parameters for a turn-timeout announcement
type GetTimeoutMessageInput struct {
	// PlayerName is the player whose turn ran out
	PlayerName string

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetTimeoutMessageOutput contains the result of getting a timeout message
type GetTimeoutMessageOutput struct {
	// Message is the rendered announcement
	Message string
}

// GetGuessResultMessageInput contains parameters for a guess-result message
type GetGuessResultMessageInput struct {
	// PlayerName is the guessing player
	PlayerName string

	// Correct indicates whether the guess hit
	Correct bool

	// Locked indicates the guess was swallowed by an active penalty lock
	Locked bool

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetGuessResultMessageOutput contains the result of getting a guess-result
// message
type GetGuessResultMessageOutput struct {
	// Message is the rendered announcement
	Message string
}

// GetForfeitMessageInput contains parameters for a forfeit announcement
type GetForfeitMessageInput struct {
	// PlayerName is the player who gave up
	PlayerName string

	// IdentityName is the identity they never found
	IdentityName string

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetForfeitMessageOutput contains the result of getting a forfeit message
type GetForfeitMessageOutput struct {
	// Message is the rendered announcement
	Message string
}

// GetGameOverMessageInput contains parameters for an end-of-game message
type GetGameOverMessageInput struct {
	// WinnerName is the player at the top of the standings
	WinnerName string

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetGameOverMessageOutput contains the result of getting an end-of-game
// message
type GetGameOverMessageOutput struct {
	// Message is the rendered announcement
	Message string
}
