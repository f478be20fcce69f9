package postgres

import (
	"time"

	"github.com/matchday/prediction-league/internal/domain/user"
)

type userTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:   m.ID,
		Name: m.Name,
		Role: m.Role,
	}
}
