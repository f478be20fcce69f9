package memory

import (
	"context"
	"sort"

	"github.com/matchday/prediction-league/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.users[userID]
	return item, ok, nil
}

func (r *UserRepository) ListByRole(_ context.Context, role string) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []user.User
	for _, item := range r.store.users {
		if item.Role == role {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
