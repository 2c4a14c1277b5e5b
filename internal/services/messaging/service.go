package messaging

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// service implements the Service interface
type service struct {
	// Default tone applied when a caller does not ask for one
	tone MessageTone

	// Random number generator for selecting random messages
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	tone := ToneFunny
	if config != nil && config.PreferredTone != "" {
		tone = config.PreferredTone
	}

	source := rand.NewSource(time.Now().UnixNano())

	return &service{
		tone: tone,
		rand: rand.New(source),
	}, nil
}

func (s *service) resolveTone(preferred MessageTone) MessageTone {
	if preferred != "" {
		return preferred
	}
	return s.tone
}

// pick selects one message at random
func (s *service) pick(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[s.rand.Intn(len(messages))]
}

// GetTimeoutMessage returns an announcement for a turn that ran out
func (s *service) GetTimeoutMessage(ctx context.Context, input *GetTimeoutMessageInput) (*GetTimeoutMessageOutput, error) {
	var messages []string

	switch s.resolveTone(input.PreferredTone) {
	case ToneSarcastic:
		messages = []string{
			"%s ran out the clock. Riveting stuff.",
			"Time's up for %s. We were all on the edge of our seats.",
			"%s spent the whole turn thinking. About what, we may never know.",
		}
	case ToneEncouraging:
		messages = []string{
			"Time's up for %s, but the clues are adding up!",
			"%s is out of time for now. Next turn is the one!",
			"The clock beat %s this round. Keep those questions coming!",
		}
	case ToneNeutral:
		messages = []string{
			"Time is up for %s.",
			"%s's turn has ended.",
		}
	default:
		messages = []string{
			"Tick tock! %s stared into the void and the void said nothing.",
			"%s's turn evaporated. Poof.",
			"The timer got %s. It remains undefeated.",
		}
	}

	return &GetTimeoutMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.PlayerName),
	}, nil
}

// GetGuessResultMessage returns a message for a player's guess attempt
func (s *service) GetGuessResultMessage(ctx context.Context, input *GetGuessResultMessageInput) (*GetGuessResultMessageOutput, error) {
	var messages []string
	tone := s.resolveTone(input.PreferredTone)

	switch {
	case input.Locked:
		messages = []string{
			"Easy there, %s! Your guessing privileges are on a short break.",
			"%s, the penalty box says no. Try again in a moment.",
			"Not yet, %s. Wrong guesses have consequences.",
		}
	case input.Correct && tone == ToneSarcastic:
		messages = []string{
			"%s finally figured out who they are. Growth.",
			"Congratulations, %s. Only took you all game.",
		}
	case input.Correct:
		messages = []string{
			"%s cracked it! Identity crisis resolved.",
			"Yes! %s knows exactly who they are.",
			"Nailed it, %s! That's the one.",
		}
	case tone == ToneEncouraging:
		messages = []string{
			"Not quite, %s, but you're circling it!",
			"Swing and a miss, %s. The next one lands!",
		}
	default:
		messages = []string{
			"Nope! %s is having a full-blown identity crisis.",
			"Wrong! %s, you are not that person. Probably for the best.",
			"%s guessed wrong and earned a time-out from guessing.",
		}
	}

	return &GetGuessResultMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.PlayerName),
	}, nil
}

// GetForfeitMessage returns an announcement for a player giving up
func (s *service) GetForfeitMessage(ctx context.Context, input *GetForfeitMessageInput) (*GetForfeitMessageOutput, error) {
	var messages []string

	switch s.resolveTone(input.PreferredTone) {
	case ToneSarcastic:
		messages = []string{
			"%s gave up on being %s. Honestly, who could blame them.",
			"%s threw in the towel. They were %s the whole time. Awkward.",
		}
	case ToneNeutral:
		messages = []string{
			"%s has forfeited. They were %s.",
		}
	default:
		messages = []string{
			"%s waves the white flag! The big reveal: they were %s!",
			"%s taps out! Turns out they were %s all along.",
			"And %s surrenders! Say hello to... %s!",
		}
	}

	return &GetForfeitMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.PlayerName, input.IdentityName),
	}, nil
}

// GetGameOverMessage returns an announcement for the end of a game
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	var messages []string

	switch s.resolveTone(input.PreferredTone) {
	case ToneSarcastic:
		messages = []string{
			"Game over. %s wins, everyone else gets character development.",
			"%s takes it. The rest of you were very convincing strangers to yourselves.",
		}
	case ToneNeutral:
		messages = []string{
			"The game is over. %s wins.",
		}
	default:
		messages = []string{
			"That's a wrap! %s takes the crown!",
			"Game over! %s figured themselves out fastest!",
			"All identities revealed! %s wins the night!",
		}
	}

	return &GetGameOverMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.WinnerName),
	}, nil
}
