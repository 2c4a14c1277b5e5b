package game

import (
	"time"

	"github.com/tmcfarlane/whoami/internal/models"
)

func (s *GameServiceTestSuite) TestMakeGuess_CorrectAdvancesTurn() {
	code, ids := s.startPlaying(3)

	output, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "secret " + ids[0],
	})

	s.Require().NoError(err)
	s.Equal(GuessResultCorrect, output.Result)
	s.Require().NotNil(output.Identity)
	s.Equal("Secret "+ids[0], output.Identity.DisplayName)
	s.True(output.TurnAdvanced)
	s.False(output.Finished)

	room := s.room(code)
	s.True(room.Players[ids[0]].HasGuessed)
	s.Equal(ids[1], room.Turn.GuesserID)
}

func (s *GameServiceTestSuite) TestMakeGuess_AliasAccepted() {
	_, ids := s.startPlaying(3)

	output, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "Champ " + ids[0],
	})

	s.Require().NoError(err)
	s.Equal(GuessResultCorrect, output.Result)
}

func (s *GameServiceTestSuite) TestMakeGuess_NearMissAccepted() {
	_, ids := s.startPlaying(3)

	// One character off on a nine-character name clears the threshold
	output, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "secrat " + ids[0],
	})

	s.Require().NoError(err)
	s.Equal(GuessResultCorrect, output.Result)
}

func (s *GameServiceTestSuite) TestMakeGuess_IncorrectAppliesLock() {
	code, ids := s.startPlaying(3)

	output, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "Totally Wrong",
	})

	s.Require().NoError(err)
	s.Equal(GuessResultIncorrect, output.Result)
	s.Equal(s.testTime.Add(10*time.Second), output.LockExpiresAt)
	s.False(output.TurnAdvanced)
	s.Nil(output.Identity)

	// The turn itself is unaffected; the guesser may still ask questions
	room := s.room(code)
	s.Equal(ids[0], room.Turn.GuesserID)
	s.False(room.Players[ids[0]].HasGuessed)
}

func (s *GameServiceTestSuite) TestMakeGuess_LockedWhileLockActive() {
	_, ids := s.startPlaying(3)

	_, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "Totally Wrong",
	})
	s.Require().NoError(err)

	s.now = s.testTime.Add(5 * time.Second)

	// Even a correct guess is not evaluated while the lock holds
	output, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "secret " + ids[0],
	})

	s.Require().NoError(err)
	s.Equal(GuessResultLocked, output.Result)
	s.Equal(s.testTime.Add(10*time.Second), output.LockExpiresAt)
}

func (s *GameServiceTestSuite) TestMakeGuess_EvaluatedAfterLockExpires() {
	_, ids := s.startPlaying(3)

	_, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "Totally Wrong",
	})
	s.Require().NoError(err)

	s.now = s.testTime.Add(10*time.Second + time.Millisecond)

	output, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "secret " + ids[0],
	})

	s.Require().NoError(err)
	s.Equal(GuessResultCorrect, output.Result)
}

func (s *GameServiceTestSuite) TestMakeGuess_RelockReplacesEarlierLock() {
	_, ids := s.startPlaying(3)

	_, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "Wrong Once",
	})
	s.Require().NoError(err)

	s.now = s.testTime.Add(11 * time.Second)

	output, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[0],
		Text:     "Wrong Twice",
	})

	s.Require().NoError(err)
	s.Equal(GuessResultIncorrect, output.Result)

	// The new lock runs from now, not stacked on the old one
	s.Equal(s.now.Add(10*time.Second), output.LockExpiresAt)
}

func (s *GameServiceTestSuite) TestMakeGuess_NotYourTurn() {
	_, ids := s.startPlaying(3)

	output, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
		PlayerID: ids[1],
		Text:     "secret " + ids[1],
	})

	s.Require().Error(err)
	s.Equal(ErrNotYourTurn, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestMakeGuess_LastGuesserFinishesGame() {
	code, ids := s.startPlaying(3)

	for i, id := range ids {
		output, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
			PlayerID: id,
			Text:     "secret " + id,
		})
		s.Require().NoError(err)
		s.Equal(GuessResultCorrect, output.Result)
		s.Equal(i == len(ids)-1, output.Finished)
	}

	room := s.room(code)
	s.Equal(models.PhaseFinished, room.Phase)
	s.Nil(room.Turn)
	s.Len(room.Standings, 3)
}

func (s *GameServiceTestSuite) TestFinishedGame_ArchivesRecord() {
	code, ids := s.startPlaying(3)

	_, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Am I real?",
	})
	s.Require().NoError(err)

	for _, id := range ids {
		_, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{
			PlayerID: id,
			Text:     "secret " + id,
		})
		s.Require().NoError(err)
	}

	s.Require().Len(s.savedRecords, 1)
	record := s.savedRecords[0]
	s.NotEmpty(record.ID)
	s.Equal(code, record.RoomCode)
	s.Equal(3, record.PlayerCount)
	s.Len(record.Standings, 3)
	s.Len(record.Questions, 1)
	s.Equal(s.testTime, record.CreatedAt)
}

func (s *GameServiceTestSuite) TestStandings_GuessersRankedByQuestionCount() {
	code, ids := s.startPlaying(3)

	// p1 guesses straight away; p2 needs two questions first; p3 forfeits
	_, err := s.gameService.MakeGuess(s.ctx, &MakeGuessInput{PlayerID: ids[0], Text: "secret " + ids[0]})
	s.Require().NoError(err)

	for _, text := range []string{"Am I alive?", "Am I fictional?"} {
		_, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{PlayerID: ids[1], Text: text})
		s.Require().NoError(err)
	}
	_, err = s.gameService.MakeGuess(s.ctx, &MakeGuessInput{PlayerID: ids[1], Text: "secret " + ids[1]})
	s.Require().NoError(err)

	_, err = s.gameService.Forfeit(s.ctx, &ForfeitInput{PlayerID: ids[2]})
	s.Require().NoError(err)

	standings := s.room(code).Standings
	s.Require().Len(standings, 3)
	s.Equal(ids[0], standings[0].PlayerID)
	s.Equal(1, standings[0].Position)
	s.Equal(ids[1], standings[1].PlayerID)
	s.Equal(ids[2], standings[2].PlayerID)
	s.False(standings[2].GuessedCorrectly)
}
