package memory

import (
	"sync"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/user"
)

// Store holds all league state in process memory behind one lock. It backs
// local development and the repository contract tests; the scoring store
// shares the same lock so settlement stays atomic here too.
type Store struct {
	mu          sync.RWMutex
	rounds      map[string]round.Round
	fixtures    map[string]fixture.Fixture
	predictions map[string]prediction.Prediction
	users       map[string]user.User
}

func NewStore() *Store {
	return &Store{
		rounds:      make(map[string]round.Round),
		fixtures:    make(map[string]fixture.Fixture),
		predictions: make(map[string]prediction.Prediction),
		users:       make(map[string]user.User),
	}
}

func (s *Store) AddUsers(items ...user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.users[item.ID] = item
	}
}

func (s *Store) AddRounds(items ...round.Round) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.rounds[item.ID] = item
	}
}

func (s *Store) AddFixtures(items ...fixture.Fixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.fixtures[item.ID] = item
	}
}

func (s *Store) AddPredictions(items ...prediction.Prediction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.predictions[item.ID] = item
	}
}
