package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/platform/logging"
)

func TestRoundService_CreateRound(t *testing.T) {
	t.Parallel()

	rounds := newStubRoundRepository()
	service := NewRoundService(rounds, &stubIDGenerator{}, logging.NewNop())

	got, err := service.CreateRound(context.Background(), CreateRoundInput{Name: "  Matchday 12  "})
	if err != nil {
		t.Fatalf("CreateRound error: %v", err)
	}
	if got.Name != "Matchday 12" {
		t.Fatalf("name = %q, want trimmed", got.Name)
	}
	if got.Status != round.StatusSetup {
		t.Fatalf("status = %s, want SETUP", got.Status)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}

	if _, err := service.CreateRound(context.Background(), CreateRoundInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestRoundService_OpenRound_RequiresDeadline(t *testing.T) {
	t.Parallel()

	rounds := newStubRoundRepository(round.Round{ID: "r1", Status: round.StatusSetup})
	service := NewRoundService(rounds, &stubIDGenerator{}, logging.NewNop())

	if err := service.OpenRound(context.Background(), "r1"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState without deadline, got %v", err)
	}

	if err := service.SetDeadline(context.Background(), "r1", time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SetDeadline error: %v", err)
	}
	if err := service.OpenRound(context.Background(), "r1"); err != nil {
		t.Fatalf("OpenRound error: %v", err)
	}

	rnd, _, _ := rounds.GetByID(context.Background(), "r1")
	if rnd.Status != round.StatusOpen {
		t.Fatalf("status = %s, want OPEN", rnd.Status)
	}
}

func TestRoundService_LifecycleOnlyMovesForward(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	rounds := newStubRoundRepository(round.Round{ID: "r1", Status: round.StatusOpen, Deadline: &deadline})
	service := NewRoundService(rounds, &stubIDGenerator{}, logging.NewNop())

	if err := service.OpenRound(context.Background(), "r1"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState re-opening an OPEN round, got %v", err)
	}
	if err := service.CloseRound(context.Background(), "r1"); err != nil {
		t.Fatalf("CloseRound error: %v", err)
	}
	if err := service.CloseRound(context.Background(), "r1"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState closing twice, got %v", err)
	}
}

func TestRoundService_SetDeadlineOnlyDuringSetup(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	rounds := newStubRoundRepository(round.Round{ID: "r1", Status: round.StatusOpen, Deadline: &deadline})
	service := NewRoundService(rounds, &stubIDGenerator{}, logging.NewNop())

	err := service.SetDeadline(context.Background(), "r1", deadline.Add(time.Hour))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestRoundService_CompletedIsReservedForScoring(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	rounds := newStubRoundRepository(round.Round{ID: "r1", Status: round.StatusClosed, Deadline: &deadline})
	service := NewRoundService(rounds, &stubIDGenerator{}, logging.NewNop())

	err := service.transition(context.Background(), "r1", round.StatusCompleted)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}
