package prediction

import "context"

// Repository exposes prediction reads and the submission upsert. Awarded
// points are written through the scoring store, not here.
type Repository interface {
	GetByUserAndFixture(ctx context.Context, userID, fixtureID string) (Prediction, bool, error)
	ListByRound(ctx context.Context, roundID string) ([]Prediction, error)
	ListByUserAndRound(ctx context.Context, userID, roundID string) ([]Prediction, error)
	ListByRounds(ctx context.Context, roundIDs []string) ([]Prediction, error)
	Upsert(ctx context.Context, item Prediction) error
}
