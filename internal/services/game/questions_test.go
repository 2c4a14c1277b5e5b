package game

import (
	"github.com/tmcfarlane/whoami/internal/models"
)

func (s *GameServiceTestSuite) TestAskQuestion_HappyPath() {
	code, ids := s.startPlaying(3)

	output, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Am I alive?",
	})

	s.Require().NoError(err)
	s.Require().NotNil(output.Question)
	s.NotEmpty(output.Question.ID)
	s.Equal(ids[0], output.Question.AskerID)
	s.Equal("Am I alive?", output.Question.Text)
	s.Equal(s.testTime, output.Question.CreatedAt)

	room := s.room(code)
	s.Require().Len(room.History, 1)
	s.Equal(output.Question.ID, room.Turn.Question.ID)
	s.Equal(1, room.Players[ids[0]].TurnsToGuess)
}

func (s *GameServiceTestSuite) TestAskQuestion_NotYourTurn() {
	_, ids := s.startPlaying(3)

	output, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[1],
		Text:     "Am I next?",
	})

	s.Require().Error(err)
	s.Equal(ErrNotYourTurn, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestAskQuestion_WrongPhase() {
	_, ids := s.newLobby(3)

	output, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Too early?",
	})

	s.Require().Error(err)
	s.Equal(ErrWrongPhase, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestAskQuestion_ReplacesCurrentQuestion() {
	code, ids := s.startPlaying(3)

	_, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Am I a man?",
	})
	s.Require().NoError(err)

	// A follow-up never waits on votes for the first
	output, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Am I a woman?",
	})
	s.Require().NoError(err)

	room := s.room(code)
	s.Len(room.History, 2)
	s.Equal("Am I a woman?", room.Turn.Question.Text)
	s.Equal(2, room.Players[ids[0]].TurnsToGuess)
	s.Equal(output.Question.ID, room.Turn.Question.ID)
}

func (s *GameServiceTestSuite) TestSubmitVote_TallyAccumulates() {
	_, ids := s.startPlaying(3)

	asked, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Am I real?",
	})
	s.Require().NoError(err)

	_, err = s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		PlayerID:   ids[1],
		QuestionID: asked.Question.ID,
		Vote:       models.VoteYes,
	})
	s.Require().NoError(err)

	output, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		PlayerID:   ids[2],
		QuestionID: asked.Question.ID,
		Vote:       models.VoteMaybe,
	})
	s.Require().NoError(err)

	s.Equal(models.VoteTally{Yes: 1, Maybe: 1}, output.Question.Tally)
	s.Len(output.Question.Votes, 2)
}

func (s *GameServiceTestSuite) TestSubmitVote_RevoteReplaces() {
	_, ids := s.startPlaying(3)

	asked, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Am I real?",
	})
	s.Require().NoError(err)

	_, err = s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		PlayerID:   ids[1],
		QuestionID: asked.Question.ID,
		Vote:       models.VoteYes,
	})
	s.Require().NoError(err)

	// Changing the answer moves the tally, never double-counts
	output, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		PlayerID:   ids[1],
		QuestionID: asked.Question.ID,
		Vote:       models.VoteNo,
	})
	s.Require().NoError(err)

	s.Equal(models.VoteTally{No: 1}, output.Question.Tally)
	s.Require().Len(output.Question.Votes, 1)
	s.Equal(models.VoteNo, output.Question.Votes[0].Value)
}

func (s *GameServiceTestSuite) TestSubmitVote_OwnQuestion() {
	_, ids := s.startPlaying(3)

	asked, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Am I real?",
	})
	s.Require().NoError(err)

	output, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		PlayerID:   ids[0],
		QuestionID: asked.Question.ID,
		Vote:       models.VoteYes,
	})

	s.Require().Error(err)
	s.Equal(ErrOwnQuestion, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestSubmitVote_QuestionMismatch() {
	_, ids := s.startPlaying(3)

	_, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Am I real?",
	})
	s.Require().NoError(err)

	output, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		PlayerID:   ids[1],
		QuestionID: "some-old-question",
		Vote:       models.VoteYes,
	})

	s.Require().Error(err)
	s.Equal(ErrQuestionMismatch, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestSubmitVote_NoCurrentQuestion() {
	_, ids := s.startPlaying(3)

	output, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		PlayerID:   ids[1],
		QuestionID: "anything",
		Vote:       models.VoteYes,
	})

	s.Require().Error(err)
	s.Equal(ErrNoCurrentQuestion, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestSubmitVote_InvalidVoteType() {
	_, ids := s.startPlaying(3)

	output, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		PlayerID:   ids[1],
		QuestionID: "anything",
		Vote:       models.VoteType("definitely"),
	})

	s.Require().Error(err)
	s.Equal(ErrInvalidVote, err)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestSubmitVote_ClearedOnTurnAdvance() {
	code, ids := s.startPlaying(3)

	asked, err := s.gameService.AskQuestion(s.ctx, &AskQuestionInput{
		PlayerID: ids[0],
		Text:     "Am I real?",
	})
	s.Require().NoError(err)

	_, err = s.gameService.PassTurn(s.ctx, &PassTurnInput{PlayerID: ids[0]})
	s.Require().NoError(err)

	// The question stays in history but is no longer votable
	s.Len(s.room(code).History, 1)

	output, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		PlayerID:   ids[2],
		QuestionID: asked.Question.ID,
		Vote:       models.VoteYes,
	})

	s.Require().Error(err)
	s.Equal(ErrNoCurrentQuestion, err)
	s.Nil(output)
}
