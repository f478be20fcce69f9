package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchday/prediction-league/internal/domain/prediction"
	qb "github.com/matchday/prediction-league/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) GetByUserAndFixture(ctx context.Context, userID, fixtureID string) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("*").
		From("predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("fixture_id", fixtureID),
		).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PredictionRepository) ListByRound(ctx context.Context, roundID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").
		From("predictions").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("user_id", "fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by round query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by round: %w", err)
	}
	return predictionsToDomain(rows), nil
}

func (r *PredictionRepository) ListByUserAndRound(ctx context.Context, userID, roundID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").
		From("predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("round_id", roundID),
		).
		OrderBy("fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by user and round query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by user and round: %w", err)
	}
	return predictionsToDomain(rows), nil
}

func (r *PredictionRepository) ListByRounds(ctx context.Context, roundIDs []string) ([]prediction.Prediction, error) {
	if len(roundIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(roundIDs))
	for _, id := range roundIDs {
		values = append(values, id)
	}
	query, args, err := qb.Select("*").
		From("predictions").
		Where(qb.In("round_id", values)).
		OrderBy("round_id", "user_id", "fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by rounds query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by rounds: %w", err)
	}
	return predictionsToDomain(rows), nil
}

// Upsert keys on (user_id, fixture_id); resubmitting replaces the guess and
// resets the joker flag to whatever the caller decided.
func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	insertModel := predictionInsertModel{
		ID:        item.ID,
		UserID:    item.UserID,
		FixtureID: item.FixtureID,
		RoundID:   item.RoundID,
		HomeGoals: item.HomeGoals,
		AwayGoals: item.AwayGoals,
		IsJoker:   item.IsJoker,
	}
	query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (user_id, fixture_id)
DO UPDATE SET
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    is_joker = EXCLUDED.is_joker,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction: %w", err)
	}
	return nil
}
