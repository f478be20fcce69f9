package postgres

import (
	"time"

	"github.com/matchday/prediction-league/internal/domain/round"
)

type roundTableModel struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Status    string     `db:"status"`
	Deadline  *time.Time `db:"deadline"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

type roundInsertModel struct {
	ID       string     `db:"id"`
	Name     string     `db:"name"`
	Status   string     `db:"status"`
	Deadline *time.Time `db:"deadline"`
}

func (m roundTableModel) toDomain() round.Round {
	return round.Round{
		ID:        m.ID,
		Name:      m.Name,
		Status:    m.Status,
		Deadline:  m.Deadline,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
