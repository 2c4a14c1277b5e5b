package game

import (
	"sync"

	"github.com/tmcfarlane/whoami/internal/models"
)

// recordingNotifier captures timeout events for assertion
type recordingNotifier struct {
	mu     sync.Mutex
	events []*TimeoutEvent
}

func (r *recordingNotifier) TurnTimedOut(event *TimeoutEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) all() []*TimeoutEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*TimeoutEvent(nil), r.events...)
}

func (s *GameServiceTestSuite) TestTurnTimeout_AdvancesToNextGuesser() {
	notifier := &recordingNotifier{}
	s.gameService.SetNotifier(notifier)

	code, ids := s.startPlaying(3)

	// Fire the timer callback for the current turn directly
	s.gameService.handleTurnTimeout(code, 1)

	room := s.room(code)
	s.Require().NotNil(room.Turn)
	s.Equal(ids[1], room.Turn.GuesserID)
	s.Equal(2, room.Turn.Counter)

	events := notifier.all()
	s.Require().Len(events, 1)
	s.Equal(code, events[0].RoomCode)
	s.Equal(ids[0], events[0].TimedOutPlayerID)
	s.False(events[0].Finished)
	s.Equal(ids[1], events[0].Room.Turn.GuesserID)
}

func (s *GameServiceTestSuite) TestTurnTimeout_StaleCounterIgnored() {
	notifier := &recordingNotifier{}
	s.gameService.SetNotifier(notifier)

	code, ids := s.startPlaying(3)

	// A firing armed for a turn that is no longer current is a no-op
	s.gameService.handleTurnTimeout(code, 99)

	room := s.room(code)
	s.Equal(ids[0], room.Turn.GuesserID)
	s.Equal(1, room.Turn.Counter)
	s.Empty(notifier.all())
}

func (s *GameServiceTestSuite) TestTurnTimeout_UnknownRoomIgnored() {
	notifier := &recordingNotifier{}
	s.gameService.SetNotifier(notifier)

	s.gameService.handleTurnTimeout("ZZZZZZ", 1)

	s.Empty(notifier.all())
}

func (s *GameServiceTestSuite) TestTurnTimeout_AfterFinishIgnored() {
	notifier := &recordingNotifier{}
	s.gameService.SetNotifier(notifier)

	code, ids := s.startPlaying(3)

	for _, id := range ids {
		_, err := s.gameService.Forfeit(s.ctx, &ForfeitInput{PlayerID: id})
		s.Require().NoError(err)
	}
	s.Equal(models.PhaseFinished, s.room(code).Phase)

	s.gameService.handleTurnTimeout(code, 1)

	s.Empty(notifier.all())
}

func (s *GameServiceTestSuite) TestPassTurn_HappyPath() {
	code, ids := s.startPlaying(3)

	output, err := s.gameService.PassTurn(s.ctx, &PassTurnInput{PlayerID: ids[0]})

	s.Require().NoError(err)
	s.False(output.Finished)
	s.Equal(ids[1], output.Room.Turn.GuesserID)
	s.Equal(2, output.Room.Turn.Counter)

	// Passing costs nothing
	s.Equal(0, s.room(code).Players[ids[0]].TurnsToGuess)
}

func (s *GameServiceTestSuite) TestPassTurn_NotYourTurn() {
	_, ids := s.startPlaying(3)

	output, err := s.gameService.PassTurn(s.ctx, &PassTurnInput{PlayerID: ids[1]})

	s.Require().Error(err)
	s.Equal(ErrNotYourTurn, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestTurnRotation_WrapsAroundOrder() {
	_, ids := s.startPlaying(3)

	for _, expected := range []string{ids[1], ids[2], ids[0]} {
		current := s.room(s.playerRoomCode(ids[0])).Turn.GuesserID
		output, err := s.gameService.PassTurn(s.ctx, &PassTurnInput{PlayerID: current})
		s.Require().NoError(err)
		s.Equal(expected, output.Room.Turn.GuesserID)
	}
}

// playerRoomCode resolves a player to their room code
func (s *GameServiceTestSuite) playerRoomCode(playerID string) string {
	s.gameService.mu.RLock()
	defer s.gameService.mu.RUnlock()
	return s.gameService.playerRooms[playerID]
}

func (s *GameServiceTestSuite) TestForfeit_RevealsAndSkips() {
	code, ids := s.startPlaying(3)

	output, err := s.gameService.Forfeit(s.ctx, &ForfeitInput{PlayerID: ids[0]})

	s.Require().NoError(err)
	s.False(output.Finished)
	s.Equal(1, output.ForfeitOrder)
	s.Require().NotNil(output.Identity)
	s.Equal("Secret "+ids[0], output.Identity.DisplayName)
	s.Equal(ids[1], output.Room.Turn.GuesserID)

	// The forfeited player never gets the turn again
	_, err = s.gameService.PassTurn(s.ctx, &PassTurnInput{PlayerID: ids[1]})
	s.Require().NoError(err)
	out2, err := s.gameService.PassTurn(s.ctx, &PassTurnInput{PlayerID: ids[2]})
	s.Require().NoError(err)
	s.Equal(ids[1], out2.Room.Turn.GuesserID)

	s.Equal(models.PhasePlaying, s.room(code).Phase)
}

func (s *GameServiceTestSuite) TestForfeit_OrdersAccumulate() {
	_, ids := s.startPlaying(3)

	first, err := s.gameService.Forfeit(s.ctx, &ForfeitInput{PlayerID: ids[0]})
	s.Require().NoError(err)
	s.Equal(1, first.ForfeitOrder)

	second, err := s.gameService.Forfeit(s.ctx, &ForfeitInput{PlayerID: ids[1]})
	s.Require().NoError(err)
	s.Equal(2, second.ForfeitOrder)
}

func (s *GameServiceTestSuite) TestForfeit_LastEligibleFinishesGame() {
	code, ids := s.startPlaying(3)

	for i, id := range ids {
		output, err := s.gameService.Forfeit(s.ctx, &ForfeitInput{PlayerID: id})
		s.Require().NoError(err)
		s.Equal(i == len(ids)-1, output.Finished)
	}

	room := s.room(code)
	s.Equal(models.PhaseFinished, room.Phase)
	s.Nil(room.Turn)
	s.Require().Len(room.Standings, 3)

	// Earlier forfeits rank higher
	s.Equal(ids[0], room.Standings[0].PlayerID)
	s.Equal(ids[1], room.Standings[1].PlayerID)
	s.Equal(ids[2], room.Standings[2].PlayerID)
}

func (s *GameServiceTestSuite) TestDisconnect_ActiveGuesserAdvancesTurn() {
	code, ids := s.startPlaying(3)

	output, err := s.gameService.HandleDisconnect(s.ctx, &HandleDisconnectInput{PlayerID: ids[0]})

	s.Require().NoError(err)
	s.True(output.TurnAdvanced)
	s.False(output.Finished)

	room := s.room(code)

	// The entry stays so order and targets keep their shape
	s.Require().Contains(room.Players, ids[0])
	s.False(room.Players[ids[0]].Connected)
	s.Equal(ids[1], room.Turn.GuesserID)

	// Host role moved on with the departure
	s.Equal(ids[1], output.NewHostID)
	s.Equal(ids[1], room.HostID)
}

func (s *GameServiceTestSuite) TestDisconnect_WaitingPlayerKeepsTurn() {
	code, ids := s.startPlaying(3)

	output, err := s.gameService.HandleDisconnect(s.ctx, &HandleDisconnectInput{PlayerID: ids[2]})

	s.Require().NoError(err)
	s.False(output.TurnAdvanced)
	s.Equal(ids[0], s.room(code).Turn.GuesserID)
}
