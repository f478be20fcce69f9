package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/matchday/prediction-league/internal/domain/round"
)

type RoundRepository struct {
	store *Store
}

func NewRoundRepository(store *Store) *RoundRepository {
	return &RoundRepository{store: store}
}

func (r *RoundRepository) GetByID(_ context.Context, roundID string) (round.Round, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.rounds[roundID]
	return item, ok, nil
}

func (r *RoundRepository) List(_ context.Context) ([]round.Round, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]round.Round, 0, len(r.store.rounds))
	for _, item := range r.store.rounds {
		out = append(out, item)
	}
	sortRounds(out)
	return out, nil
}

func (r *RoundRepository) ListByStatus(_ context.Context, status string) ([]round.Round, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []round.Round
	for _, item := range r.store.rounds {
		if item.Status == status {
			out = append(out, item)
		}
	}
	sortRounds(out)
	return out, nil
}

func (r *RoundRepository) Create(_ context.Context, item round.Round) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.rounds[item.ID]; exists {
		return fmt.Errorf("round %s already exists", item.ID)
	}
	r.store.rounds[item.ID] = item
	return nil
}

func (r *RoundRepository) SetDeadline(_ context.Context, roundID string, deadline time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.rounds[roundID]
	if !ok {
		return false, nil
	}
	item.Deadline = &deadline
	item.UpdatedAt = time.Now().UTC()
	r.store.rounds[roundID] = item
	return true, nil
}

func (r *RoundRepository) UpdateStatus(_ context.Context, roundID, from, to string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.rounds[roundID]
	if !ok || item.Status != from {
		return false, nil
	}
	item.Status = to
	item.UpdatedAt = time.Now().UTC()
	r.store.rounds[roundID] = item
	return true, nil
}

func sortRounds(items []round.Round) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
