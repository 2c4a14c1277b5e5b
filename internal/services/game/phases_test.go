package game

import (
	"github.com/tmcfarlane/whoami/internal/models"
)

func (s *GameServiceTestSuite) TestStartAssignment_HappyPath() {
	_, ids := s.newLobby(3)

	output, err := s.gameService.StartAssignment(s.ctx, &StartAssignmentInput{PlayerID: ids[0]})

	s.Require().NoError(err)
	s.Equal(models.PhaseAssignment, output.Room.Phase)

	// The target relation is a single cycle over the shuffled order
	room := output.Room
	s.Equal(ids[1], room.Players[ids[0]].TargetID)
	s.Equal(ids[2], room.Players[ids[1]].TargetID)
	s.Equal(ids[0], room.Players[ids[2]].TargetID)
}

func (s *GameServiceTestSuite) TestStartAssignment_NotHost() {
	_, ids := s.newLobby(3)

	output, err := s.gameService.StartAssignment(s.ctx, &StartAssignmentInput{PlayerID: ids[1]})

	s.Require().Error(err)
	s.Equal(ErrNotHost, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestStartAssignment_WrongPhase() {
	_, ids := s.newLobby(3)
	s.toAssignment(ids)

	output, err := s.gameService.StartAssignment(s.ctx, &StartAssignmentInput{PlayerID: ids[0]})

	s.Require().Error(err)
	s.Equal(ErrWrongPhase, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestStartAssignment_NotEnoughPlayers() {
	_, ids := s.newLobby(2)

	output, err := s.gameService.StartAssignment(s.ctx, &StartAssignmentInput{PlayerID: ids[0]})

	s.Require().Error(err)
	s.Equal(ErrNotEnoughPlayers, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestSubmitAssignment_HappyPath() {
	_, ids := s.newLobby(3)
	s.toAssignment(ids)

	output, err := s.gameService.SubmitAssignment(s.ctx, &SubmitAssignmentInput{
		PlayerID:    ids[0],
		DisplayName: "Ada Lovelace",
		Aliases:     []string{"Ada"},
	})

	s.Require().NoError(err)
	s.False(output.AllSubmitted)

	room := output.Room
	s.True(room.Players[ids[0]].HasSubmitted)
	s.Require().NotNil(room.Players[ids[1]].Identity)
	s.Equal("Ada Lovelace", room.Players[ids[1]].Identity.DisplayName)
	s.Equal([]string{"Ada"}, room.Players[ids[1]].Identity.Aliases)

	// The identity is written on the target, never the author
	s.Nil(room.Players[ids[0]].Identity)
}

func (s *GameServiceTestSuite) TestSubmitAssignment_AllSubmitted() {
	_, ids := s.newLobby(3)
	s.toAssignment(ids)

	for i, id := range ids {
		output, err := s.gameService.SubmitAssignment(s.ctx, &SubmitAssignmentInput{
			PlayerID:    id,
			DisplayName: "Identity " + id,
		})
		s.Require().NoError(err)
		s.Equal(i == len(ids)-1, output.AllSubmitted)
	}
}

func (s *GameServiceTestSuite) TestSubmitAssignment_ResubmitReplaces() {
	_, ids := s.newLobby(3)
	s.toAssignment(ids)

	_, err := s.gameService.SubmitAssignment(s.ctx, &SubmitAssignmentInput{
		PlayerID:    ids[0],
		DisplayName: "First Draft",
	})
	s.Require().NoError(err)

	output, err := s.gameService.SubmitAssignment(s.ctx, &SubmitAssignmentInput{
		PlayerID:    ids[0],
		DisplayName: "Final Answer",
	})

	s.Require().NoError(err)
	s.Equal("Final Answer", output.Room.Players[ids[1]].Identity.DisplayName)
}

func (s *GameServiceTestSuite) TestSubmitAssignment_EmptyName() {
	_, ids := s.newLobby(3)
	s.toAssignment(ids)

	output, err := s.gameService.SubmitAssignment(s.ctx, &SubmitAssignmentInput{
		PlayerID: ids[0],
		Aliases:  []string{"only aliases"},
	})

	s.Require().Error(err)
	s.Equal(ErrInvalidIdentity, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestSubmitAssignment_WrongPhase() {
	_, ids := s.newLobby(3)

	output, err := s.gameService.SubmitAssignment(s.ctx, &SubmitAssignmentInput{
		PlayerID:    ids[0],
		DisplayName: "Too Early",
	})

	s.Require().Error(err)
	s.Equal(ErrWrongPhase, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestStartGame_HappyPath() {
	_, ids := s.newLobby(3)
	s.toAssignment(ids)
	s.submitAll(ids)

	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{PlayerID: ids[0]})

	s.Require().NoError(err)
	s.Equal(models.PhasePlaying, output.Room.Phase)
	s.Require().NotNil(output.Room.Turn)
	s.Equal(ids[0], output.Room.Turn.GuesserID)
	s.Equal(1, output.Room.Turn.Counter)
	s.Equal(s.testTime, output.Room.Turn.StartedAt)
	s.Equal(output.Room.Settings.TurnDuration, output.Room.Turn.Duration)
}

func (s *GameServiceTestSuite) TestStartGame_AssignmentsPending() {
	_, ids := s.newLobby(3)
	s.toAssignment(ids)

	_, err := s.gameService.SubmitAssignment(s.ctx, &SubmitAssignmentInput{
		PlayerID:    ids[0],
		DisplayName: "Only One",
	})
	s.Require().NoError(err)

	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{PlayerID: ids[0]})

	s.Require().Error(err)
	s.Equal(ErrAssignmentsPending, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestStartGame_NotHost() {
	_, ids := s.newLobby(3)
	s.toAssignment(ids)
	s.submitAll(ids)

	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{PlayerID: ids[2]})

	s.Require().Error(err)
	s.Equal(ErrNotHost, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestStartGame_WrongPhase() {
	_, ids := s.newLobby(3)

	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{PlayerID: ids[0]})

	s.Require().Error(err)
	s.Equal(ErrWrongPhase, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestLeaveDuringAssignment_RepairsTargetChain() {
	code, ids := s.newLobby(4)
	s.toAssignment(ids)

	// p2 writes an identity for p3, then leaves
	_, err := s.gameService.SubmitAssignment(s.ctx, &SubmitAssignmentInput{
		PlayerID:    ids[1],
		DisplayName: "Orphaned Identity",
	})
	s.Require().NoError(err)

	output, err := s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{PlayerID: ids[1]})
	s.Require().NoError(err)
	s.False(output.RoomClosed)

	room := s.room(code)

	// p1 inherits the gap: p1 -> p3 now, and must submit again
	s.Equal(ids[2], room.Players[ids[0]].TargetID)
	s.False(room.Players[ids[0]].HasSubmitted)

	// The identity the leaver had written leaves with them
	s.Nil(room.Players[ids[2]].Identity)

	// The cycle still covers the remaining players
	s.Equal(ids[3], room.Players[ids[2]].TargetID)
	s.Equal(ids[0], room.Players[ids[3]].TargetID)
}
