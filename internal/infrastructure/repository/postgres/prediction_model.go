package postgres

import (
	"time"

	"github.com/matchday/prediction-league/internal/domain/prediction"
)

type predictionTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	FixtureID string    `db:"fixture_id"`
	RoundID   string    `db:"round_id"`
	HomeGoals int       `db:"home_goals"`
	AwayGoals int       `db:"away_goals"`
	IsJoker   bool      `db:"is_joker"`
	Points    *int      `db:"points"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type predictionInsertModel struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	FixtureID string `db:"fixture_id"`
	RoundID   string `db:"round_id"`
	HomeGoals int    `db:"home_goals"`
	AwayGoals int    `db:"away_goals"`
	IsJoker   bool   `db:"is_joker"`
}

func (m predictionTableModel) toDomain() prediction.Prediction {
	return prediction.Prediction{
		ID:        m.ID,
		UserID:    m.UserID,
		FixtureID: m.FixtureID,
		RoundID:   m.RoundID,
		HomeGoals: m.HomeGoals,
		AwayGoals: m.AwayGoals,
		IsJoker:   m.IsJoker,
		Points:    m.Points,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func predictionsToDomain(rows []predictionTableModel) []prediction.Prediction {
	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
