package game

import (
	"context"

	"github.com/tmcfarlane/whoami/internal/match"
	"github.com/tmcfarlane/whoami/internal/models"
)

// MakeGuess evaluates the active guesser's attempt at their own identity.
// A correct guess retires the player as a guesser and hands the turn on,
// or ends the game when nobody eligible remains. A wrong guess keeps the
// turn but locks guessing for the penalty duration; re-locking replaces the
// earlier lock rather than extending it.
func (s *service) MakeGuess(ctx context.Context, input *MakeGuessInput) (*MakeGuessOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotInRoom
	}

	rs, player, err := s.lockedRoomForPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}
	defer rs.mu.Unlock()

	room := rs.room

	if room.Phase != models.PhasePlaying {
		return nil, ErrWrongPhase
	}

	if room.Turn == nil || room.Turn.GuesserID != input.PlayerID {
		return nil, ErrNotYourTurn
	}

	if player.Identity == nil {
		return nil, ErrNoIdentity
	}

	now := s.config.Clock.Now()

	if now.Before(player.GuessLockUntil) {
		return &MakeGuessOutput{
			Result:        GuessResultLocked,
			LockExpiresAt: player.GuessLockUntil,
			Room:          snapshotRoom(room),
		}, nil
	}

	if !match.MatchesAny(input.Text, player.Identity.Candidates(), match.DefaultThreshold) {
		player.GuessLockUntil = now.Add(room.Settings.GuessLockDuration)
		room.UpdatedAt = now

		return &MakeGuessOutput{
			Result:        GuessResultIncorrect,
			LockExpiresAt: player.GuessLockUntil,
			Room:          snapshotRoom(room),
		}, nil
	}

	player.HasGuessed = true
	room.UpdatedAt = now

	out := &MakeGuessOutput{
		Result:   GuessResultCorrect,
		Identity: copyIdentity(player.Identity),
	}

	if !s.anyEligibleLocked(room) {
		// The winner was the last player still guessing; the room
		// finishes right here instead of going through the scheduler
		s.finishRoomLocked(ctx, rs)
		out.Finished = true
	} else {
		out.Finished = s.advanceTurnLocked(ctx, rs)
		out.TurnAdvanced = true
	}

	out.Room = snapshotRoom(room)
	return out, nil
}

// PassTurn ends the active guesser's turn without penalty or reveal
func (s *service) PassTurn(ctx context.Context, input *PassTurnInput) (*PassTurnOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotInRoom
	}

	rs, _, err := s.lockedRoomForPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}
	defer rs.mu.Unlock()

	room := rs.room

	if room.Phase != models.PhasePlaying {
		return nil, ErrWrongPhase
	}

	if room.Turn == nil || room.Turn.GuesserID != input.PlayerID {
		return nil, ErrNotYourTurn
	}

	finished := s.advanceTurnLocked(ctx, rs)

	return &PassTurnOutput{
		Finished: finished,
		Room:     snapshotRoom(room),
	}, nil
}

// Forfeit takes the active guesser out of the game: their identity is
// revealed, they receive the next forfeit rank, and the turn moves on.
func (s *service) Forfeit(ctx context.Context, input *ForfeitInput) (*ForfeitOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotInRoom
	}

	rs, player, err := s.lockedRoomForPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}
	defer rs.mu.Unlock()

	room := rs.room

	if room.Phase != models.PhasePlaying {
		return nil, ErrWrongPhase
	}

	if room.Turn == nil || room.Turn.GuesserID != input.PlayerID {
		return nil, ErrNotYourTurn
	}

	player.ForfeitOrder = nextForfeitOrder(room)
	room.UpdatedAt = s.config.Clock.Now()

	out := &ForfeitOutput{
		Identity:     copyIdentity(player.Identity),
		ForfeitOrder: player.ForfeitOrder,
	}

	out.Finished = s.advanceTurnLocked(ctx, rs)
	out.Room = snapshotRoom(room)

	return out, nil
}

// nextForfeitOrder returns one past the highest forfeit rank handed out so
// far. Player entries are never deleted during play, so ranks are never
// reused.
func nextForfeitOrder(room *models.Room) int {
	highest := 0
	for _, p := range room.Players {
		if p.ForfeitOrder > highest {
			highest = p.ForfeitOrder
		}
	}
	return highest + 1
}
