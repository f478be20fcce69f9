package memory

import (
	"context"
	"sort"
	"time"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/scoring"
)

// ScoringStore gives the in-memory store the same all-or-nothing settlement
// semantics as the database one: the store lock is held for the whole
// callback and writes are buffered, applied only when the callback succeeds.
type ScoringStore struct {
	store *Store
}

func NewScoringStore(store *Store) *ScoringStore {
	return &ScoringStore{store: store}
}

func (s *ScoringStore) InTx(ctx context.Context, fn func(ctx context.Context, tx scoring.Tx) error) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	tx := &scoringTx{store: s.store, points: make(map[string]int)}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	now := time.Now().UTC()
	for predictionID, points := range tx.points {
		item, ok := s.store.predictions[predictionID]
		if !ok {
			continue
		}
		value := points
		item.Points = &value
		item.UpdatedAt = now
		s.store.predictions[predictionID] = item
	}
	if tx.statusRoundID != "" {
		item, ok := s.store.rounds[tx.statusRoundID]
		if ok {
			item.Status = tx.status
			item.UpdatedAt = now
			s.store.rounds[tx.statusRoundID] = item
		}
	}
	return nil
}

type scoringTx struct {
	store         *Store
	points        map[string]int
	statusRoundID string
	status        string
}

func (t *scoringTx) GetRoundForUpdate(_ context.Context, roundID string) (round.Round, bool, error) {
	item, ok := t.store.rounds[roundID]
	return item, ok, nil
}

func (t *scoringTx) ListFixturesByRound(_ context.Context, roundID string) ([]fixture.Fixture, error) {
	return listFixturesByRoundLocked(t.store, roundID), nil
}

func (t *scoringTx) ListPredictionsByRound(_ context.Context, roundID string) ([]prediction.Prediction, error) {
	out := listPredictionsByRoundsLocked(t.store, map[string]bool{roundID: true})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *scoringTx) SetPredictionPoints(_ context.Context, predictionID string, points int) error {
	t.points[predictionID] = points
	return nil
}

func (t *scoringTx) SetRoundStatus(_ context.Context, roundID, status string) error {
	t.statusRoundID = roundID
	t.status = status
	return nil
}
