package game

import (
	"context"
	"log"
	"time"

	"github.com/tmcfarlane/whoami/internal/models"
	archiveRepo "github.com/tmcfarlane/whoami/internal/repositories/archive"
)

// eligible reports whether a player can still take a turn as guesser
func eligible(p *models.Player) bool {
	return p.Connected && !p.HasGuessed && p.ForfeitOrder == 0
}

// eligibleFromLocked scans the order sequence for the first eligible player,
// starting at startIdx and wrapping. Returns false when a full scan finds
// nobody. Assumes the room lock is held.
func (s *service) eligibleFromLocked(room *models.Room, startIdx int) (int, bool) {
	n := len(room.Order)
	if n == 0 {
		return 0, false
	}

	for i := 0; i < n; i++ {
		idx := (startIdx + i) % n
		if p, ok := room.Players[room.Order[idx]]; ok && eligible(p) {
			return idx, true
		}
	}

	return 0, false
}

// anyEligibleLocked reports whether any player can still take a turn.
// Assumes the room lock is held.
func (s *service) anyEligibleLocked(room *models.Room) bool {
	_, ok := s.eligibleFromLocked(room, 0)
	return ok
}

// advanceTurnLocked ends the current turn and hands it to the next eligible
// guesser, or finishes the room when none remains. Returns true when the
// room finished. Assumes the room lock is held.
func (s *service) advanceTurnLocked(ctx context.Context, rs *roomState) bool {
	room := rs.room

	pos := 0
	if room.Turn != nil {
		for i, id := range room.Order {
			if id == room.Turn.GuesserID {
				pos = i
				break
			}
		}
	}

	next, ok := s.eligibleFromLocked(room, (pos+1)%len(room.Order))
	if !ok {
		s.finishRoomLocked(ctx, rs)
		return true
	}

	counter := 1
	if room.Turn != nil {
		counter = room.Turn.Counter + 1
	}

	room.Turn = &models.TurnState{
		GuesserID: room.Order[next],
		Counter:   counter,
		StartedAt: s.config.Clock.Now(),
		Duration:  room.Settings.TurnDuration,
	}
	room.UpdatedAt = room.Turn.StartedAt

	s.armTurnTimerLocked(rs)
	return false
}

// armTurnTimerLocked starts the turn timer for the current turn, replacing
// any timer that is still outstanding so a room never has two. The callback
// carries the turn counter it was armed for; applying it re-validates that
// the turn is still current, so a cancellation lost to the race is absorbed
// as a no-op. Assumes the room lock is held.
func (s *service) armTurnTimerLocked(rs *roomState) {
	if rs.timer != nil {
		rs.timer.Stop()
		rs.timer = nil
	}

	if rs.room.Turn == nil {
		return
	}

	code := rs.room.Code
	counter := rs.room.Turn.Counter

	rs.timer = time.AfterFunc(rs.room.Turn.Duration, func() {
		s.handleTurnTimeout(code, counter)
	})
}

// handleTurnTimeout is the timer callback for a turn that ran out. The
// room may have moved on since the timer was armed; a firing for anything
// but the current turn of a playing room is stale and ignored.
func (s *service) handleTurnTimeout(roomCode string, turnCounter int) {
	s.mu.RLock()
	rs, ok := s.rooms[roomCode]
	s.mu.RUnlock()

	if !ok {
		return
	}

	rs.mu.Lock()

	room := rs.room
	if room.Phase != models.PhasePlaying || room.Turn == nil || room.Turn.Counter != turnCounter {
		rs.mu.Unlock()
		return
	}

	timedOut := room.Turn.GuesserID
	finished := s.advanceTurnLocked(context.Background(), rs)
	snapshot := snapshotRoom(room)

	rs.mu.Unlock()

	// Notify outside the room lock so the transport can re-enter the
	// service freely
	if n := s.getNotifier(); n != nil {
		n.TurnTimedOut(&TimeoutEvent{
			RoomCode:         roomCode,
			Room:             snapshot,
			TimedOutPlayerID: timedOut,
			Finished:         finished,
		})
	}
}

// finishRoomLocked ends the game: the timer is cancelled, the final
// standings are computed, and the record is archived. Assumes the room lock
// is held.
func (s *service) finishRoomLocked(ctx context.Context, rs *roomState) {
	room := rs.room

	if rs.timer != nil {
		rs.timer.Stop()
		rs.timer = nil
	}

	room.Phase = models.PhaseFinished
	room.Turn = nil
	room.Standings = rankPlayers(room)
	room.UpdatedAt = s.config.Clock.Now()

	record := &archiveRepo.GameRecord{
		ID:          s.config.UUIDGenerator.NewUUID(),
		RoomCode:    room.Code,
		PlayerCount: len(room.Players),
		Standings:   room.Standings,
		Questions:   room.History,
		CreatedAt:   room.CreatedAt,
		FinishedAt:  room.UpdatedAt,
	}

	// Archival failure is scoped to the record; the game result stands
	if err := s.config.ArchiveRepo.SaveRecord(ctx, &archiveRepo.SaveRecordInput{Record: record}); err != nil {
		log.Printf("failed to archive game %s: %v", room.Code, err)
	}
}
