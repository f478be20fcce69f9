package memory

import (
	"context"
	"sort"

	"github.com/matchday/prediction-league/internal/domain/prediction"
)

type PredictionRepository struct {
	store *Store
}

func NewPredictionRepository(store *Store) *PredictionRepository {
	return &PredictionRepository{store: store}
}

func (r *PredictionRepository) GetByUserAndFixture(_ context.Context, userID, fixtureID string) (prediction.Prediction, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, item := range r.store.predictions {
		if item.UserID == userID && item.FixtureID == fixtureID {
			return item, true, nil
		}
	}
	return prediction.Prediction{}, false, nil
}

func (r *PredictionRepository) ListByRound(_ context.Context, roundID string) ([]prediction.Prediction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listPredictionsByRoundsLocked(r.store, map[string]bool{roundID: true}), nil
}

func (r *PredictionRepository) ListByUserAndRound(_ context.Context, userID, roundID string) ([]prediction.Prediction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []prediction.Prediction
	for _, item := range r.store.predictions {
		if item.UserID == userID && item.RoundID == roundID {
			out = append(out, item)
		}
	}
	sortPredictions(out)
	return out, nil
}

func (r *PredictionRepository) ListByRounds(_ context.Context, roundIDs []string) ([]prediction.Prediction, error) {
	wanted := make(map[string]bool, len(roundIDs))
	for _, id := range roundIDs {
		wanted[id] = true
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listPredictionsByRoundsLocked(r.store, wanted), nil
}

func (r *PredictionRepository) Upsert(_ context.Context, item prediction.Prediction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.predictions[item.ID] = item
	return nil
}

func listPredictionsByRoundsLocked(store *Store, roundIDs map[string]bool) []prediction.Prediction {
	var out []prediction.Prediction
	for _, item := range store.predictions {
		if roundIDs[item.RoundID] {
			out = append(out, item)
		}
	}
	sortPredictions(out)
	return out
}

func sortPredictions(items []prediction.Prediction) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].UserID != items[j].UserID {
			return items[i].UserID < items[j].UserID
		}
		if items[i].FixtureID != items[j].FixtureID {
			return items[i].FixtureID < items[j].FixtureID
		}
		return items[i].ID < items[j].ID
	})
}
