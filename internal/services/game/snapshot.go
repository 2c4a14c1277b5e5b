package game

import (
	"github.com/tmcfarlane/whoami/internal/models"
)

// snapshotRoom deep-copies a room so callers can fan it out after the room
// lock is released without racing later mutations.
func snapshotRoom(room *models.Room) *models.Room {
	if room == nil {
		return nil
	}

	cp := *room
	cp.Order = append([]string(nil), room.Order...)

	cp.Players = make(map[string]*models.Player, len(room.Players))
	for id, p := range room.Players {
		cp.Players[id] = copyPlayer(p)
	}

	cp.History = make([]*models.Question, 0, len(room.History))
	for _, q := range room.History {
		cp.History = append(cp.History, copyQuestion(q))
	}

	if room.Turn != nil {
		turn := *room.Turn
		turn.Question = copyQuestion(room.Turn.Question)
		cp.Turn = &turn
	}

	if room.Standings != nil {
		cp.Standings = make([]*models.RankEntry, 0, len(room.Standings))
		for _, e := range room.Standings {
			entry := *e
			cp.Standings = append(cp.Standings, &entry)
		}
	}

	return &cp
}

func copyPlayer(p *models.Player) *models.Player {
	cp := *p
	cp.Identity = copyIdentity(p.Identity)
	return &cp
}

func copyIdentity(i *models.Identity) *models.Identity {
	if i == nil {
		return nil
	}
	cp := *i
	cp.Aliases = append([]string(nil), i.Aliases...)
	return &cp
}

func copyQuestion(q *models.Question) *models.Question {
	if q == nil {
		return nil
	}
	cp := *q
	cp.Votes = make([]*models.Vote, 0, len(q.Votes))
	for _, v := range q.Votes {
		vote := *v
		cp.Votes = append(cp.Votes, &vote)
	}
	return &cp
}
