package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	qb "github.com/matchday/prediction-league/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").
		From("fixtures").
		Where(qb.Eq("id", fixtureID)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *FixtureRepository) ListByRound(ctx context.Context, roundID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").
		From("fixtures").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures by round query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures by round: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FixtureRepository) Create(ctx context.Context, item fixture.Fixture) error {
	insertModel := fixtureInsertModel{
		ID:        item.ID,
		RoundID:   item.RoundID,
		HomeTeam:  item.HomeTeam,
		AwayTeam:  item.AwayTeam,
		KickoffAt: item.KickoffAt,
		Status:    item.Status,
	}
	query, args, err := qb.InsertModel("fixtures", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fixture: %w", err)
	}
	return nil
}

func (r *FixtureRepository) SetResult(ctx context.Context, fixtureID string, home, away int) (bool, error) {
	query, args, err := qb.Update("fixtures").
		Set("home_score", home).
		Set("away_score", away).
		Set("status", fixture.StatusFinished).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", fixtureID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set fixture result query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set fixture result: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set fixture result rows affected: %w", err)
	}
	return affected > 0, nil
}
