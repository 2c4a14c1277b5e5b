package ws

import (
	"time"

	"github.com/tmcfarlane/whoami/internal/services/game"
)

// ClientMessage is the envelope for everything a client sends. Type selects
// the action; the remaining fields are read per type and ignored otherwise.
type ClientMessage struct {
	Type string `json:"type"`

	// create_room / join_room
	RoomCode string `json:"roomCode,omitempty"`
	Name     string `json:"name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`

	// submit_assignment
	DisplayName string   `json:"displayName,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
	ImageRef    string   `json:"imageRef,omitempty"`

	// ask_question / guess
	Text string `json:"text,omitempty"`

	// vote
	QuestionID string `json:"questionId,omitempty"`
	Vote       string `json:"vote,omitempty"`
}

// Client message types
const (
	MsgCreateRoom       = "create_room"
	MsgJoinRoom         = "join_room"
	MsgLeaveRoom        = "leave_room"
	MsgStartAssignment  = "start_assignment"
	MsgSubmitAssignment = "submit_assignment"
	MsgStartGame        = "start_game"
	MsgAskQuestion      = "ask_question"
	MsgVote             = "vote"
	MsgGuess            = "guess"
	MsgPass             = "pass"
	MsgForfeit          = "forfeit"
	MsgGetRoom          = "get_room"
)

// RoomStateMessage carries a recipient's view of their room. Each recipient
// gets their own projection; the payloads differ per player on purpose.
type RoomStateMessage struct {
	Type string         `json:"type"`
	Room *game.RoomView `json:"room"`
}

// ErrorMessage reports a rejected action back to its sender only
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// WelcomeMessage tells a freshly connected client who they are
type WelcomeMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// GuessResultMessage goes to the guesser alone; the identity text of a
// wrong guess is never shared with the room
type GuessResultMessage struct {
	Type          string           `json:"type"`
	Result        game.GuessResult `json:"result"`
	LockExpiresAt *time.Time       `json:"lockExpiresAt,omitempty"`
	Identity      string           `json:"identity,omitempty"`
	Finished      bool             `json:"finished"`
	Flavor        string           `json:"flavor,omitempty"`
}

// TurnTimeoutMessage announces a timer-driven turn change
type TurnTimeoutMessage struct {
	Type             string         `json:"type"`
	TimedOutPlayerID string         `json:"timedOutPlayerId"`
	Finished         bool           `json:"finished"`
	Room             *game.RoomView `json:"room"`
	Flavor           string         `json:"flavor,omitempty"`
}

// AnnouncementMessage carries room-wide flavor text for a notable event
type AnnouncementMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// RoomClosedMessage tells a client their room no longer exists
type RoomClosedMessage struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
}

// Server message types
const (
	MsgRoomState    = "room_state"
	MsgError        = "error"
	MsgWelcome      = "welcome"
	MsgGuessResult  = "guess_result"
	MsgTurnTimeout  = "turn_timeout"
	MsgRoomClosed   = "room_closed"
	MsgAnnouncement = "announcement"
)
