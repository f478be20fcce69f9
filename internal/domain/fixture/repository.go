package fixture

import "context"

type Repository interface {
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	ListByRound(ctx context.Context, roundID string) ([]Fixture, error)
	Create(ctx context.Context, item Fixture) error
	SetResult(ctx context.Context, fixtureID string, homeScore, awayScore int) (bool, error)
}
