package game

import (
	"context"

	"github.com/tmcfarlane/whoami/internal/models"
)

// AskQuestion submits a question from the active guesser. A new question
// simply replaces whatever was current, answered or not; the pace of the
// game never waits on votes. Every question lands in the permanent history.
func (s *service) AskQuestion(ctx context.Context, input *AskQuestionInput) (*AskQuestionOutput, error) {
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

	question := &models.Question{
		ID:        s.config.UUIDGenerator.NewUUID(),
		AskerID:   input.PlayerID,
		Text:      input.Text,
		CreatedAt: s.config.Clock.Now(),
	}

	room.Turn.Question = question
	room.History = append(room.History, question)
	player.TurnsToGuess++
	room.UpdatedAt = question.CreatedAt

	return &AskQuestionOutput{
		Question: copyQuestion(question),
		Room:     snapshotRoom(room),
	}, nil
}

// SubmitVote answers the current question. A voter's later vote replaces
// their earlier one, and the tally moves with it, so every voter counts
// exactly once with their latest choice.
func (s *service) SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotInRoom
	}

	if !input.Vote.Valid() {
		return nil, ErrInvalidVote
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

	question := currentQuestion(room)
	if question == nil {
		return nil, ErrNoCurrentQuestion
	}

	if question.ID != input.QuestionID {
		return nil, ErrQuestionMismatch
	}

	if question.AskerID == input.PlayerID {
		return nil, ErrOwnQuestion
	}

	var existing *models.Vote
	for _, v := range question.Votes {
		if v.VoterID == input.PlayerID {
			existing = v
			break
		}
	}

	if existing != nil {
		tallyAdd(&question.Tally, existing.Value, -1)
		existing.Value = input.Vote
	} else {
		question.Votes = append(question.Votes, &models.Vote{
			VoterID: input.PlayerID,
			Value:   input.Vote,
		})
	}
	tallyAdd(&question.Tally, input.Vote, 1)

	room.UpdatedAt = s.config.Clock.Now()

	return &SubmitVoteOutput{
		Question: copyQuestion(question),
		Room:     snapshotRoom(room),
	}, nil
}

// currentQuestion returns the active turn's question, if any
func currentQuestion(room *models.Room) *models.Question {
	if room.Turn == nil {
		return nil
	}
	return room.Turn.Question
}

// tallyAdd shifts one tally bucket by delta
func tallyAdd(t *models.VoteTally, vote models.VoteType, delta int) {
	switch vote {
	case models.VoteYes:
		t.Yes += delta
	case models.VoteNo:
		t.No += delta
	case models.VoteMaybe:
		t.Maybe += delta
	}
}
