package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/matchday/prediction-league/internal/domain/fixture"
)

type FixtureRepository struct {
	store *Store
}

func NewFixtureRepository(store *Store) *FixtureRepository {
	return &FixtureRepository{store: store}
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.fixtures[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) ListByRound(_ context.Context, roundID string) ([]fixture.Fixture, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listFixturesByRoundLocked(r.store, roundID), nil
}

func (r *FixtureRepository) Create(_ context.Context, item fixture.Fixture) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.fixtures[item.ID]; exists {
		return fmt.Errorf("fixture %s already exists", item.ID)
	}
	r.store.fixtures[item.ID] = item
	return nil
}

func (r *FixtureRepository) SetResult(_ context.Context, fixtureID string, home, away int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.fixtures[fixtureID]
	if !ok {
		return false, nil
	}
	item.HomeScore = &home
	item.AwayScore = &away
	item.Status = fixture.StatusFinished
	item.UpdatedAt = time.Now().UTC()
	r.store.fixtures[fixtureID] = item
	return true, nil
}

func listFixturesByRoundLocked(store *Store, roundID string) []fixture.Fixture {
	var out []fixture.Fixture
	for _, item := range store.fixtures {
		if item.RoundID == roundID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
