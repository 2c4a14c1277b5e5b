package game

import (
	"sort"

	"github.com/tmcfarlane/whoami/internal/models"
)

// rankPlayers derives the end-of-game leaderboard. Forfeited players rank
// below everyone else, earlier forfeits first among themselves. Among the
// rest, players who found their identity rank above those who did not,
// ordered by how few questions they needed. The sort is stable over the
// turn order, so the result is total.
func rankPlayers(room *models.Room) []*models.RankEntry {
	entries := make([]*models.RankEntry, 0, len(room.Order))
	for _, id := range room.Order {
		p, ok := room.Players[id]
		if !ok {
			continue
		}
		entries = append(entries, &models.RankEntry{
			PlayerID:         p.ID,
			PlayerName:       p.Name,
			GuessedCorrectly: p.HasGuessed,
			TurnsToGuess:     p.TurnsToGuess,
			ForfeitOrder:     p.ForfeitOrder,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		aForfeited := a.ForfeitOrder > 0
		bForfeited := b.ForfeitOrder > 0
		if aForfeited != bForfeited {
			return !aForfeited
		}
		if aForfeited {
			return a.ForfeitOrder < b.ForfeitOrder
		}

		if a.GuessedCorrectly != b.GuessedCorrectly {
			return a.GuessedCorrectly
		}
		if a.GuessedCorrectly {
			return a.TurnsToGuess < b.TurnsToGuess
		}

		return false
	})

	for i, e := range entries {
		e.Position = i + 1
	}

	return entries
}
