package memory

import (
	"time"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/user"
)

const (
	RoundIDMatchday1 = "matchday-01"
	RoundIDMatchday2 = "matchday-02"
)

func SeedUsers() []user.User {
	return []user.User{
		{ID: "user-alice", Name: "Alice", Role: user.RolePlayer},
		{ID: "user-bob", Name: "Bob", Role: user.RolePlayer},
		{ID: "user-cara", Name: "Cara", Role: user.RolePlayer},
		{ID: "user-admin", Name: "League Admin", Role: user.RoleOperator},
	}
}

func SeedRounds(now time.Time) []round.Round {
	deadline1 := now.Add(-48 * time.Hour)
	deadline2 := now.Add(72 * time.Hour)
	return []round.Round{
		{
			ID:       RoundIDMatchday1,
			Name:     "Matchday 1",
			Status:   round.StatusClosed,
			Deadline: &deadline1,
		},
		{
			ID:       RoundIDMatchday2,
			Name:     "Matchday 2",
			Status:   round.StatusOpen,
			Deadline: &deadline2,
		},
	}
}

func SeedFixtures(now time.Time) []fixture.Fixture {
	return []fixture.Fixture{
		{
			ID:        "fx-md1-ars-liv",
			RoundID:   RoundIDMatchday1,
			HomeTeam:  "Arsenal",
			AwayTeam:  "Liverpool",
			KickoffAt: now.Add(-72 * time.Hour),
			Status:    fixture.StatusScheduled,
		},
		{
			ID:        "fx-md1-mci-che",
			RoundID:   RoundIDMatchday1,
			HomeTeam:  "Manchester City",
			AwayTeam:  "Chelsea",
			KickoffAt: now.Add(-70 * time.Hour),
			Status:    fixture.StatusScheduled,
		},
		{
			ID:        "fx-md2-tot-mun",
			RoundID:   RoundIDMatchday2,
			HomeTeam:  "Tottenham",
			AwayTeam:  "Manchester United",
			KickoffAt: now.Add(96 * time.Hour),
			Status:    fixture.StatusScheduled,
		},
	}
}

// SeedStore fills a store with a small playable league: one closed round
// awaiting results and one open round accepting predictions.
func SeedStore(store *Store, now time.Time) {
	store.AddUsers(SeedUsers()...)
	store.AddRounds(SeedRounds(now)...)
	store.AddFixtures(SeedFixtures(now)...)
}
