package archive

import (
	"time"

	"github.com/tmcfarlane/whoami/internal/models"
)

// GameRecord is the archived summary of one finished game
type GameRecord struct {
	// ID is the unique identifier for this record
	ID string

	// RoomCode is the code the room was played under
	RoomCode string

	// PlayerCount is how many players were in the room at game end
	PlayerCount int

	// Standings is the final leaderboard
	Standings []*models.RankEntry

	// Questions is the full question history of the game
	Questions []*models.Question

	// CreatedAt is when the room was created
	CreatedAt time.Time

	// FinishedAt is when the game ended
	FinishedAt time.Time
}

type SaveRecordInput struct {
	Record *GameRecord
}

type GetRecordInput struct {
	RecordID string
}

type GetRecentRecordsInput struct {
	// Limit caps how many records are returned. Defaults to 10.
	Limit int
}

type GetRecentRecordsOutput struct {
	Records []*GameRecord
}
