package round

import (
	"context"
	"time"
)

// Repository exposes round persistence. UpdateStatus is conditional on the
// current status so lifecycle moves never race each other.
type Repository interface {
	GetByID(ctx context.Context, roundID string) (Round, bool, error)
	List(ctx context.Context) ([]Round, error)
	ListByStatus(ctx context.Context, status string) ([]Round, error)
	Create(ctx context.Context, item Round) error
	SetDeadline(ctx context.Context, roundID string, deadline time.Time) (bool, error)
	UpdateStatus(ctx context.Context, roundID, from, to string) (bool, error)
}
