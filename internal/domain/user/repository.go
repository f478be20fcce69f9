package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	ListByRole(ctx context.Context, role string) ([]User, error)
}
