package models

import (
	"time"
)

// VoteType represents an answer to a yes/no question
type VoteType string

const (
	// VoteYes is an affirmative answer
	VoteYes VoteType = "yes"

	// VoteNo is a negative answer
	VoteNo VoteType = "no"

	// VoteMaybe is an uncertain answer
	VoteMaybe VoteType = "maybe"
)

// Valid reports whether v is one of the three recognized vote types
func (v VoteType) Valid() bool {
	switch v {
	case VoteYes, VoteNo, VoteMaybe:
		return true
	}
	return false
}

// Vote is a single player's answer to a question
type Vote struct {
	// VoterID is the player who cast the vote
	VoterID string

	// Value is the answer given
	Value VoteType
}

// VoteTally is the running count of votes by type
type VoteTally struct {
	Yes   int
	No    int
	Maybe int
}

// Question is a yes/no question asked by the active guesser
type Question struct {
	// ID is the unique identifier for the question
	ID string

	// AskerID is the player who asked the question
	AskerID string

	// Text is the question text
	Text string

	// Votes holds one entry per voter, in the order first votes arrived.
	// A re-vote updates the voter's entry in place.
	Votes []*Vote

	// Tally is the exact count of the entries in Votes
	Tally VoteTally

	// CreatedAt is when the question was asked
	CreatedAt time.Time
}
