package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusFinished  = "FINISHED"
)

// Fixture is one match inside a round. Scores stay nil until the actual
// result has been entered.
type Fixture struct {
	ID        string
	RoundID   string
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
	HomeScore *int
	AwayScore *int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// HasResult reports whether both actual scores are present.
func (f Fixture) HasResult() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}
