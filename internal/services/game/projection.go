package game

import (
	"time"

	"github.com/tmcfarlane/whoami/internal/models"
)

// IdentityView is the wire shape of an assigned identity
type IdentityView struct {
	DisplayName string   `json:"displayName"`
	Aliases     []string `json:"aliases,omitempty"`
	ImageRef    string   `json:"imageRef,omitempty"`
}

// PlayerView is the wire shape of a player as seen by one recipient
type PlayerView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	AvatarRef    string    `json:"avatarRef,omitempty"`
	Connected    bool      `json:"connected"`
	HasSubmitted bool      `json:"hasSubmitted"`
	HasGuessed   bool      `json:"hasGuessed"`
	TurnsToGuess int       `json:"turnsToGuess"`
	ForfeitOrder int       `json:"forfeitOrder,omitempty"`
	IsSelf       bool      `json:"isSelf"`
	// Identity is elided for the viewer's own entry until they have
	// guessed correctly
	Identity *IdentityView `json:"identity,omitempty"`
}

// VoteView is the wire shape of a single vote
type VoteView struct {
	VoterID string          `json:"voterId"`
	Value   models.VoteType `json:"value"`
}

// QuestionView is the wire shape of a question with its tally
type QuestionView struct {
	ID        string     `json:"id"`
	AskerID   string     `json:"askerId"`
	Text      string     `json:"text"`
	Votes     []VoteView `json:"votes"`
	Yes       int        `json:"yes"`
	No        int        `json:"no"`
	Maybe     int        `json:"maybe"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TurnView is the wire shape of the active turn
type TurnView struct {
	GuesserID  string        `json:"guesserId"`
	Counter    int           `json:"counter"`
	StartedAt  time.Time     `json:"startedAt"`
	DurationMS int64         `json:"durationMs"`
	Question   *QuestionView `json:"question,omitempty"`
}

// RankView is the wire shape of one leaderboard row
type RankView struct {
	Position         int    `json:"position"`
	PlayerID         string `json:"playerId"`
	PlayerName       string `json:"playerName"`
	GuessedCorrectly bool   `json:"guessedCorrectly"`
	TurnsToGuess     int    `json:"turnsToGuess"`
	ForfeitOrder     int    `json:"forfeitOrder,omitempty"`
}

// RoomView is one recipient's tailored view of a room
type RoomView struct {
	Code      string           `json:"code"`
	Phase     models.RoomPhase `json:"phase"`
	HostID    string           `json:"hostId"`
	Players   []*PlayerView    `json:"players"`
	Turn      *TurnView        `json:"turn,omitempty"`
	Standings []*RankView      `json:"standings,omitempty"`
	History   int              `json:"questionsAsked"`
}

// ProjectRoom builds the view of a room for a single recipient. Concealing
// each player's own assigned identity from them is the core mechanic, so
// fan-out is one projection per recipient rather than one broadcast: the
// viewer's entry carries no identity until it stops being a secret: a
// correct guess, a forfeit, or the end of the game. Everyone else's
// identities are shown in full once assigned.
func ProjectRoom(room *models.Room, viewerID string) *RoomView {
	view := &RoomView{
		Code:    room.Code,
		Phase:   room.Phase,
		HostID:  room.HostID,
		Players: make([]*PlayerView, 0, len(room.Order)),
		History: len(room.History),
	}

	for _, id := range room.Order {
		p, ok := room.Players[id]
		if !ok {
			continue
		}

		pv := &PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			AvatarRef:    p.AvatarRef,
			Connected:    p.Connected,
			HasSubmitted: p.HasSubmitted,
			HasGuessed:   p.HasGuessed,
			TurnsToGuess: p.TurnsToGuess,
			ForfeitOrder: p.ForfeitOrder,
			IsSelf:       p.ID == viewerID,
		}

		revealed := p.ID != viewerID || p.HasGuessed || p.ForfeitOrder > 0 ||
			room.Phase == models.PhaseFinished
		if p.Identity != nil && revealed {
			pv.Identity = &IdentityView{
				DisplayName: p.Identity.DisplayName,
				Aliases:     append([]string(nil), p.Identity.Aliases...),
				ImageRef:    p.Identity.ImageRef,
			}
		}

		view.Players = append(view.Players, pv)
	}

	if room.Turn != nil {
		view.Turn = &TurnView{
			GuesserID:  room.Turn.GuesserID,
			Counter:    room.Turn.Counter,
			StartedAt:  room.Turn.StartedAt,
			DurationMS: room.Turn.Duration.Milliseconds(),
			Question:   projectQuestion(room.Turn.Question),
		}
	}

	for _, e := range room.Standings {
		view.Standings = append(view.Standings, &RankView{
			Position:         e.Position,
			PlayerID:         e.PlayerID,
			PlayerName:       e.PlayerName,
			GuessedCorrectly: e.GuessedCorrectly,
			TurnsToGuess:     e.TurnsToGuess,
			ForfeitOrder:     e.ForfeitOrder,
		})
	}

	return view
}

func projectQuestion(q *models.Question) *QuestionView {
	if q == nil {
		return nil
	}

	qv := &QuestionView{
		ID:        q.ID,
		AskerID:   q.AskerID,
		Text:      q.Text,
		Votes:     make([]VoteView, 0, len(q.Votes)),
		Yes:       q.Tally.Yes,
		No:        q.Tally.No,
		Maybe:     q.Tally.Maybe,
		CreatedAt: q.CreatedAt,
	}

	for _, v := range q.Votes {
		qv.Votes = append(qv.Votes, VoteView{
			VoterID: v.VoterID,
			Value:   v.Value,
		})
	}

	return qv
}
