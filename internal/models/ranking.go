package models

// RankEntry is one row of the end-of-game leaderboard
type RankEntry struct {
	// Position is the 1-based rank
	Position int

	// PlayerID is the ranked player
	PlayerID string

	// PlayerName is the player's display name at game end
	PlayerName string

	// GuessedCorrectly indicates the player found their own identity
	GuessedCorrectly bool

	// TurnsToGuess is the number of questions the player asked
	TurnsToGuess int

	// ForfeitOrder is 0 unless the player gave up, in which case it records
	// how early they did
	ForfeitOrder int
}
