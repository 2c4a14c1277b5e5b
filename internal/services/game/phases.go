package game

import (
	"context"

	"github.com/tmcfarlane/whoami/internal/models"
)

// StartAssignment moves a lobby into the assignment phase. Host only. The
// player order is shuffled and each player's target becomes the next entry
// in the shuffled sequence, the last wrapping to the first, so the target
// relation is a single cycle covering every player.
func (s *service) StartAssignment(ctx context.Context, input *StartAssignmentInput) (*StartAssignmentOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotInRoom
	}

	rs, _, err := s.lockedRoomForPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}
	defer rs.mu.Unlock()

	room := rs.room

	if room.HostID != input.PlayerID {
		return nil, ErrNotHost
	}

	if room.Phase != models.PhaseLobby {
		return nil, ErrWrongPhase
	}

	if len(room.Players) < room.Settings.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	// This is the only place the assignment relation is written
	room.Order = s.config.Shuffler.Shuffle(room.Order)
	for i, id := range room.Order {
		next := room.Order[(i+1)%len(room.Order)]
		room.Players[id].TargetID = next
	}

	room.Phase = models.PhaseAssignment
	room.UpdatedAt = s.config.Clock.Now()

	return &StartAssignmentOutput{
		Room: snapshotRoom(room),
	}, nil
}

// SubmitAssignment records the identity a player wrote for their target.
// Resubmitting replaces the earlier identity.
func (s *service) SubmitAssignment(ctx context.Context, input *SubmitAssignmentInput) (*SubmitAssignmentOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotInRoom
	}

	if input.DisplayName == "" {
		return nil, ErrInvalidIdentity
	}

	rs, player, err := s.lockedRoomForPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}
	defer rs.mu.Unlock()

	room := rs.room

	if room.Phase != models.PhaseAssignment {
		return nil, ErrWrongPhase
	}

	target, ok := room.Players[player.TargetID]
	if !ok {
		return nil, ErrNoTarget
	}

	target.Identity = &models.Identity{
		DisplayName: input.DisplayName,
		Aliases:     append([]string(nil), input.Aliases...),
		ImageRef:    input.ImageRef,
	}
	player.HasSubmitted = true
	room.UpdatedAt = s.config.Clock.Now()

	allSubmitted := true
	for _, p := range room.Players {
		if !p.HasSubmitted {
			allSubmitted = false
			break
		}
	}

	return &SubmitAssignmentOutput{
		Room:         snapshotRoom(room),
		AllSubmitted: allSubmitted,
	}, nil
}

// StartGame moves a room into play. Host only; every player must have
// submitted an identity. The first eligible player in order becomes the
// first guesser and the turn timer starts.
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotInRoom
	}

	rs, _, err := s.lockedRoomForPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}
	defer rs.mu.Unlock()

	room := rs.room

	if room.HostID != input.PlayerID {
		return nil, ErrNotHost
	}

	if room.Phase != models.PhaseAssignment {
		return nil, ErrWrongPhase
	}

	for _, p := range room.Players {
		if !p.HasSubmitted {
			return nil, ErrAssignmentsPending
		}
	}

	firstIdx, ok := s.eligibleFromLocked(room, 0)
	if !ok {
		// Everyone dropped during assignment; nothing to play
		return nil, ErrNotEnoughPlayers
	}

	room.Phase = models.PhasePlaying
	room.Turn = &models.TurnState{
		GuesserID: room.Order[firstIdx],
		Counter:   1,
		StartedAt: s.config.Clock.Now(),
		Duration:  room.Settings.TurnDuration,
	}
	room.UpdatedAt = room.Turn.StartedAt

	s.armTurnTimerLocked(rs)

	return &StartGameOutput{
		Room: snapshotRoom(room),
	}, nil
}
