package prediction

import "time"

// Prediction is one user's guessed scoreline for one fixture. Points stays
// nil until the owning round has been scored; it is set exactly once, inside
// the scoring transaction that completes the round.
type Prediction struct {
	ID        string
	UserID    string
	FixtureID string
	RoundID   string
	HomeGoals int
	AwayGoals int
	IsJoker   bool
	Points    *int
	CreatedAt time.Time
	UpdatedAt time.Time
}
