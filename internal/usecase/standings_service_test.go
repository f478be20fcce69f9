package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/user"
	"github.com/matchday/prediction-league/internal/platform/logging"
)

func standingsUsers() *stubUserRepository {
	return newStubUserRepository(
		user.User{ID: "u-alice", Name: "Alice", Role: user.RolePlayer},
		user.User{ID: "u-bob", Name: "Bob", Role: user.RolePlayer},
		user.User{ID: "u-cara", Name: "Cara", Role: user.RolePlayer},
		user.User{ID: "u-ops", Name: "Ops", Role: user.RoleOperator},
	)
}

func TestStandingsService_Overall_RanksWithTiesAndZeroPointPlayers(t *testing.T) {
	t.Parallel()

	deadline1 := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	deadline2 := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)
	rounds := newStubRoundRepository(
		round.Round{ID: "r1", Status: round.StatusCompleted, Deadline: timePtr(deadline1)},
		round.Round{ID: "r2", Status: round.StatusCompleted, Deadline: timePtr(deadline2)},
		round.Round{ID: "r3", Status: round.StatusOpen},
	)
	predictions := newStubPredictionRepository(
		prediction.Prediction{ID: "p1", UserID: "u-alice", RoundID: "r1", FixtureID: "f1", Points: intPtr(3)},
		prediction.Prediction{ID: "p2", UserID: "u-alice", RoundID: "r2", FixtureID: "f2", Points: intPtr(4)},
		prediction.Prediction{ID: "p3", UserID: "u-bob", RoundID: "r1", FixtureID: "f1", Points: intPtr(7)},
		// Unscored prediction in the open round must not count.
		prediction.Prediction{ID: "p4", UserID: "u-cara", RoundID: "r3", FixtureID: "f3"},
	)

	service := NewStandingsService(rounds, predictions, standingsUsers(), nil, logging.NewNop())

	view, err := service.CalculateStandings(context.Background(), StandingsInput{})
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}
	if view.Scope != ScopeOverall {
		t.Fatalf("scope = %s, want %s", view.Scope, ScopeOverall)
	}
	if len(view.Rows) != 3 {
		t.Fatalf("expected 3 player rows, got %d: %+v", len(view.Rows), view.Rows)
	}

	if view.Rows[0].UserID != "u-alice" || view.Rows[0].TotalPoints != 7 || view.Rows[0].Rank != 1 {
		t.Fatalf("unexpected rank 1 row: %+v", view.Rows[0])
	}
	if view.Rows[1].UserID != "u-bob" || view.Rows[1].TotalPoints != 7 || view.Rows[1].Rank != 1 {
		t.Fatalf("unexpected rank 1 tie row: %+v", view.Rows[1])
	}
	if view.Rows[2].UserID != "u-cara" || view.Rows[2].TotalPoints != 0 || view.Rows[2].Rank != 3 {
		t.Fatalf("unexpected trailing row: %+v", view.Rows[2])
	}
}

func TestStandingsService_Overall_MovementAgainstPreviousSnapshot(t *testing.T) {
	t.Parallel()

	deadline1 := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	deadline2 := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)
	rounds := newStubRoundRepository(
		round.Round{ID: "r1", Status: round.StatusCompleted, Deadline: timePtr(deadline1)},
		round.Round{ID: "r2", Status: round.StatusCompleted, Deadline: timePtr(deadline2)},
	)
	// After r1: bob 5, alice 2, cara 0. After r2: alice 8, bob 5, cara 0.
	predictions := newStubPredictionRepository(
		prediction.Prediction{ID: "p1", UserID: "u-bob", RoundID: "r1", FixtureID: "f1", Points: intPtr(5)},
		prediction.Prediction{ID: "p2", UserID: "u-alice", RoundID: "r1", FixtureID: "f1", Points: intPtr(2)},
		prediction.Prediction{ID: "p3", UserID: "u-alice", RoundID: "r2", FixtureID: "f2", Points: intPtr(6)},
	)

	service := NewStandingsService(rounds, predictions, standingsUsers(), nil, logging.NewNop())

	view, err := service.CalculateStandings(context.Background(), StandingsInput{})
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}

	byUser := make(map[string]StandingsRow, len(view.Rows))
	for _, row := range view.Rows {
		byUser[row.UserID] = row
	}

	alice := byUser["u-alice"]
	if alice.Rank != 1 || alice.Movement == nil || *alice.Movement != 1 {
		t.Fatalf("alice row = %+v, want rank 1 movement +1", alice)
	}
	bob := byUser["u-bob"]
	if bob.Rank != 2 || bob.Movement == nil || *bob.Movement != -1 {
		t.Fatalf("bob row = %+v, want rank 2 movement -1", bob)
	}
	cara := byUser["u-cara"]
	if cara.Rank != 3 || cara.Movement == nil || *cara.Movement != 0 {
		t.Fatalf("cara row = %+v, want rank 3 movement 0", cara)
	}
}

func TestStandingsService_RoundScope_ComparesAgainstPreviousRound(t *testing.T) {
	t.Parallel()

	deadline1 := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	deadline2 := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)
	rounds := newStubRoundRepository(
		round.Round{ID: "r1", Status: round.StatusCompleted, Deadline: timePtr(deadline1)},
		round.Round{ID: "r2", Status: round.StatusCompleted, Deadline: timePtr(deadline2)},
	)
	predictions := newStubPredictionRepository(
		prediction.Prediction{ID: "p1", UserID: "u-bob", RoundID: "r1", FixtureID: "f1", Points: intPtr(5)},
		prediction.Prediction{ID: "p2", UserID: "u-alice", RoundID: "r2", FixtureID: "f2", Points: intPtr(4)},
	)

	service := NewStandingsService(rounds, predictions, standingsUsers(), nil, logging.NewNop())

	view, err := service.CalculateStandings(context.Background(), StandingsInput{RoundID: "r2"})
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}
	if view.Scope != "r2" {
		t.Fatalf("scope = %s, want r2", view.Scope)
	}

	byUser := make(map[string]StandingsRow, len(view.Rows))
	for _, row := range view.Rows {
		byUser[row.UserID] = row
	}

	// In r1 alice sat at rank 2 (0 points behind bob); in r2 she leads.
	alice := byUser["u-alice"]
	if alice.TotalPoints != 4 || alice.Rank != 1 || alice.Movement == nil || *alice.Movement != 1 {
		t.Fatalf("alice row = %+v, want 4 points rank 1 movement +1", alice)
	}
	bob := byUser["u-bob"]
	if bob.TotalPoints != 0 || bob.Movement == nil || *bob.Movement != -1 {
		t.Fatalf("bob row = %+v, want 0 points movement -1", bob)
	}
}

func TestStandingsService_RoundScope_EarliestRoundHasNilMovement(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	rounds := newStubRoundRepository(
		round.Round{ID: "r1", Status: round.StatusCompleted, Deadline: timePtr(deadline)},
	)
	predictions := newStubPredictionRepository(
		prediction.Prediction{ID: "p1", UserID: "u-alice", RoundID: "r1", FixtureID: "f1", Points: intPtr(3)},
	)

	service := NewStandingsService(rounds, predictions, standingsUsers(), nil, logging.NewNop())

	view, err := service.CalculateStandings(context.Background(), StandingsInput{RoundID: "r1"})
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}
	for _, row := range view.Rows {
		if row.Movement != nil {
			t.Fatalf("movement for %s = %d, want nil", row.UserID, *row.Movement)
		}
	}
}

func TestStandingsService_RoundScope_RejectsUnscoredRound(t *testing.T) {
	t.Parallel()

	rounds := newStubRoundRepository(round.Round{ID: "r1", Status: round.StatusOpen})
	service := NewStandingsService(rounds, newStubPredictionRepository(), standingsUsers(), nil, logging.NewNop())

	_, err := service.CalculateStandings(context.Background(), StandingsInput{RoundID: "r1"})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	_, err = service.CalculateStandings(context.Background(), StandingsInput{RoundID: "nope"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStandingsService_Overall_SingleCompletedRoundHasNilMovement(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	rounds := newStubRoundRepository(
		round.Round{ID: "r1", Status: round.StatusCompleted, Deadline: timePtr(deadline)},
	)
	predictions := newStubPredictionRepository(
		prediction.Prediction{ID: "p1", UserID: "u-alice", RoundID: "r1", FixtureID: "f1", Points: intPtr(3)},
	)

	service := NewStandingsService(rounds, predictions, standingsUsers(), nil, logging.NewNop())

	view, err := service.CalculateStandings(context.Background(), StandingsInput{})
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}
	if len(view.Rows) != 3 {
		t.Fatalf("expected 3 player rows, got %d", len(view.Rows))
	}
	// No second completed round exists, so there is no previous table and
	// movement must stay nil rather than 0 for every user.
	for _, row := range view.Rows {
		if row.Movement != nil {
			t.Fatalf("movement for %s = %d, want nil", row.UserID, *row.Movement)
		}
	}
}

func TestStandingsService_MemberFilterRanksWithinSubset(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	rounds := newStubRoundRepository(
		round.Round{ID: "r1", Status: round.StatusCompleted, Deadline: timePtr(deadline)},
	)
	predictions := newStubPredictionRepository(
		prediction.Prediction{ID: "p1", UserID: "u-alice", RoundID: "r1", FixtureID: "f1", Points: intPtr(6)},
		prediction.Prediction{ID: "p2", UserID: "u-bob", RoundID: "r1", FixtureID: "f1", Points: intPtr(3)},
	)

	service := NewStandingsService(rounds, predictions, standingsUsers(), nil, logging.NewNop())

	view, err := service.CalculateStandings(context.Background(), StandingsInput{MemberFilter: []string{"u-cara", "u-bob"}})
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}
	if len(view.Rows) != 2 {
		t.Fatalf("expected 2 filtered rows, got %d", len(view.Rows))
	}
	// Alice's 6 points are outside the subset and must not push ranks down.
	if view.Rows[0].UserID != "u-bob" || view.Rows[0].TotalPoints != 3 || view.Rows[0].Rank != 1 {
		t.Fatalf("unexpected leading subset row: %+v", view.Rows[0])
	}
	if view.Rows[1].UserID != "u-cara" || view.Rows[1].TotalPoints != 0 || view.Rows[1].Rank != 2 {
		t.Fatalf("unexpected trailing subset row: %+v", view.Rows[1])
	}
}
