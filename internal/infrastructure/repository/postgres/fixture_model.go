package postgres

import (
	"time"

	"github.com/matchday/prediction-league/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID        string    `db:"id"`
	RoundID   string    `db:"round_id"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	KickoffAt time.Time `db:"kickoff_at"`
	HomeScore *int      `db:"home_score"`
	AwayScore *int      `db:"away_score"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type fixtureInsertModel struct {
	ID        string    `db:"id"`
	RoundID   string    `db:"round_id"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	KickoffAt time.Time `db:"kickoff_at"`
	Status    string    `db:"status"`
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:        m.ID,
		RoundID:   m.RoundID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		KickoffAt: m.KickoffAt,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
