package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/scoring"
	"github.com/matchday/prediction-league/internal/domain/user"
)

type stubRoundRepository struct {
	mu     sync.Mutex
	byID   map[string]round.Round
	getErr error
}

func newStubRoundRepository(items ...round.Round) *stubRoundRepository {
	repo := &stubRoundRepository{byID: make(map[string]round.Round)}
	for _, item := range items {
		repo.byID[item.ID] = item
	}
	return repo
}

func (r *stubRoundRepository) GetByID(_ context.Context, roundID string) (round.Round, bool, error) {
	if r.getErr != nil {
		return round.Round{}, false, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[roundID]
	return item, ok, nil
}

func (r *stubRoundRepository) List(_ context.Context) ([]round.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]round.Round, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRoundRepository) ListByStatus(_ context.Context, status string) ([]round.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []round.Round
	for _, item := range r.byID {
		if item.Status == status {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRoundRepository) Create(_ context.Context, item round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[item.ID]; exists {
		return fmt.Errorf("round %s already exists", item.ID)
	}
	r.byID[item.ID] = item
	return nil
}

func (r *stubRoundRepository) SetDeadline(_ context.Context, roundID string, deadline time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[roundID]
	if !ok {
		return false, nil
	}
	item.Deadline = &deadline
	r.byID[roundID] = item
	return true, nil
}

func (r *stubRoundRepository) UpdateStatus(_ context.Context, roundID, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[roundID]
	if !ok || item.Status != from {
		return false, nil
	}
	item.Status = to
	r.byID[roundID] = item
	return true, nil
}

type stubFixtureRepository struct {
	mu   sync.Mutex
	byID map[string]fixture.Fixture
}

func newStubFixtureRepository(items ...fixture.Fixture) *stubFixtureRepository {
	repo := &stubFixtureRepository{byID: make(map[string]fixture.Fixture)}
	for _, item := range items {
		repo.byID[item.ID] = item
	}
	return repo
}

func (r *stubFixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[fixtureID]
	return item, ok, nil
}

func (r *stubFixtureRepository) ListByRound(_ context.Context, roundID string) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []fixture.Fixture
	for _, item := range r.byID {
		if item.RoundID == roundID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubFixtureRepository) Create(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[item.ID]; exists {
		return fmt.Errorf("fixture %s already exists", item.ID)
	}
	r.byID[item.ID] = item
	return nil
}

func (r *stubFixtureRepository) SetResult(_ context.Context, fixtureID string, home, away int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[fixtureID]
	if !ok {
		return false, nil
	}
	item.HomeScore = &home
	item.AwayScore = &away
	item.Status = fixture.StatusFinished
	r.byID[fixtureID] = item
	return true, nil
}

type stubPredictionRepository struct {
	mu   sync.Mutex
	byID map[string]prediction.Prediction
}

func newStubPredictionRepository(items ...prediction.Prediction) *stubPredictionRepository {
	repo := &stubPredictionRepository{byID: make(map[string]prediction.Prediction)}
	for _, item := range items {
		repo.byID[item.ID] = item
	}
	return repo
}

func (r *stubPredictionRepository) GetByUserAndFixture(_ context.Context, userID, fixtureID string) (prediction.Prediction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.byID {
		if item.UserID == userID && item.FixtureID == fixtureID {
			return item, true, nil
		}
	}
	return prediction.Prediction{}, false, nil
}

func (r *stubPredictionRepository) ListByRound(_ context.Context, roundID string) ([]prediction.Prediction, error) {
	return r.ListByRounds(context.Background(), []string{roundID})
}

func (r *stubPredictionRepository) ListByUserAndRound(_ context.Context, userID, roundID string) ([]prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []prediction.Prediction
	for _, item := range r.byID {
		if item.UserID == userID && item.RoundID == roundID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPredictionRepository) ListByRounds(_ context.Context, roundIDs []string) ([]prediction.Prediction, error) {
	wanted := make(map[string]bool, len(roundIDs))
	for _, id := range roundIDs {
		wanted[id] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []prediction.Prediction
	for _, item := range r.byID {
		if wanted[item.RoundID] {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPredictionRepository) Upsert(_ context.Context, item prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	return nil
}

func (r *stubPredictionRepository) get(predictionID string) (prediction.Prediction, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[predictionID]
	return item, ok
}

type stubUserRepository struct {
	byID map[string]user.User
}

func newStubUserRepository(items ...user.User) *stubUserRepository {
	repo := &stubUserRepository{byID: make(map[string]user.User)}
	for _, item := range items {
		repo.byID[item.ID] = item
	}
	return repo
}

func (r *stubUserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	item, ok := r.byID[userID]
	return item, ok, nil
}

func (r *stubUserRepository) ListByRole(_ context.Context, role string) ([]user.User, error) {
	var out []user.User
	for _, item := range r.byID {
		if item.Role == role {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// stubScoringStore runs the scoring callback against the stub repositories.
// Writes are buffered in the tx and applied only when the callback returns
// nil, mirroring commit and rollback.
type stubScoringStore struct {
	rounds      *stubRoundRepository
	fixtures    *stubFixtureRepository
	predictions *stubPredictionRepository
}

func (s *stubScoringStore) InTx(ctx context.Context, fn func(ctx context.Context, tx scoring.Tx) error) error {
	tx := &stubScoringTx{store: s, points: make(map[string]int)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.apply()
	return nil
}

type stubScoringTx struct {
	store       *stubScoringStore
	points      map[string]int
	roundID     string
	roundStatus string
}

func (tx *stubScoringTx) GetRoundForUpdate(ctx context.Context, roundID string) (round.Round, bool, error) {
	return tx.store.rounds.GetByID(ctx, roundID)
}

func (tx *stubScoringTx) ListFixturesByRound(ctx context.Context, roundID string) ([]fixture.Fixture, error) {
	return tx.store.fixtures.ListByRound(ctx, roundID)
}

func (tx *stubScoringTx) ListPredictionsByRound(ctx context.Context, roundID string) ([]prediction.Prediction, error) {
	return tx.store.predictions.ListByRound(ctx, roundID)
}

func (tx *stubScoringTx) SetPredictionPoints(_ context.Context, predictionID string, points int) error {
	tx.points[predictionID] = points
	return nil
}

func (tx *stubScoringTx) SetRoundStatus(_ context.Context, roundID, status string) error {
	tx.roundID = roundID
	tx.roundStatus = status
	return nil
}

func (tx *stubScoringTx) apply() {
	for predictionID, points := range tx.points {
		if item, ok := tx.store.predictions.get(predictionID); ok {
			value := points
			item.Points = &value
			_ = tx.store.predictions.Upsert(context.Background(), item)
		}
	}
	if tx.roundID != "" {
		tx.store.rounds.mu.Lock()
		item := tx.store.rounds.byID[tx.roundID]
		item.Status = tx.roundStatus
		tx.store.rounds.byID[tx.roundID] = item
		tx.store.rounds.mu.Unlock()
	}
}

type stubIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }
