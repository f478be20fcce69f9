package scoring

import (
	"context"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
)

// Tx groups the store operations of one round-scoring transaction. The round
// row returned by GetRoundForUpdate stays locked until the transaction ends,
// so at most one scoring attempt per round makes progress at a time.
type Tx interface {
	GetRoundForUpdate(ctx context.Context, roundID string) (round.Round, bool, error)
	ListFixturesByRound(ctx context.Context, roundID string) ([]fixture.Fixture, error)
	ListPredictionsByRound(ctx context.Context, roundID string) ([]prediction.Prediction, error)
	SetPredictionPoints(ctx context.Context, predictionID string, points int) error
	SetRoundStatus(ctx context.Context, roundID, status string) error
}

// Store runs fn inside one transaction. A non-nil error from fn rolls every
// write back; nil commits them together.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
