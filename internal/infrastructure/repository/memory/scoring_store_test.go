package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/scoring"
)

func TestScoringStore_InTx_CommitAppliesWrites(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.AddRounds(round.Round{ID: "r1", Status: round.StatusClosed})
	store.AddPredictions(prediction.Prediction{ID: "p1", RoundID: "r1", UserID: "u1", FixtureID: "f1"})

	err := NewScoringStore(store).InTx(context.Background(), func(ctx context.Context, tx scoring.Tx) error {
		if err := tx.SetPredictionPoints(ctx, "p1", 3); err != nil {
			return err
		}
		return tx.SetRoundStatus(ctx, "r1", round.StatusCompleted)
	})
	if err != nil {
		t.Fatalf("InTx error: %v", err)
	}

	items, _ := NewPredictionRepository(store).ListByRound(context.Background(), "r1")
	if len(items) != 1 || items[0].Points == nil || *items[0].Points != 3 {
		t.Fatalf("points not applied: %+v", items)
	}
	rnd, _, _ := NewRoundRepository(store).GetByID(context.Background(), "r1")
	if rnd.Status != round.StatusCompleted {
		t.Fatalf("round status = %s, want COMPLETED", rnd.Status)
	}
}

func TestScoringStore_InTx_ErrorDiscardsWrites(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.AddRounds(round.Round{ID: "r1", Status: round.StatusClosed})
	store.AddPredictions(prediction.Prediction{ID: "p1", RoundID: "r1", UserID: "u1", FixtureID: "f1"})

	boom := errors.New("boom")
	err := NewScoringStore(store).InTx(context.Background(), func(ctx context.Context, tx scoring.Tx) error {
		if err := tx.SetPredictionPoints(ctx, "p1", 3); err != nil {
			return err
		}
		if err := tx.SetRoundStatus(ctx, "r1", round.StatusCompleted); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	items, _ := NewPredictionRepository(store).ListByRound(context.Background(), "r1")
	if items[0].Points != nil {
		t.Fatalf("points applied despite error: %d", *items[0].Points)
	}
	rnd, _, _ := NewRoundRepository(store).GetByID(context.Background(), "r1")
	if rnd.Status != round.StatusClosed {
		t.Fatalf("round status = %s, want CLOSED", rnd.Status)
	}
}
