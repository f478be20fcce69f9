package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/scoring"
	qb "github.com/matchday/prediction-league/internal/platform/querybuilder"
)

// ScoringStore runs round settlement as one database transaction. The round
// row is locked with FOR UPDATE, so two concurrent settlements of the same
// round serialize and the loser sees the COMPLETED status.
type ScoringStore struct {
	db *sqlx.DB
}

func NewScoringStore(db *sqlx.DB) *ScoringStore {
	return &ScoringStore{db: db}
}

func (s *ScoringStore) InTx(ctx context.Context, fn func(ctx context.Context, tx scoring.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin scoring tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, &scoringTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scoring tx: %w", err)
	}
	return nil
}

type scoringTx struct {
	tx *sqlx.Tx
}

func (t *scoringTx) GetRoundForUpdate(ctx context.Context, roundID string) (round.Round, bool, error) {
	query, args, err := qb.Select("*").
		From("rounds").
		Where(qb.Eq("id", roundID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build lock round query: %w", err)
	}

	var row roundTableModel
	if err := t.tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("lock round: %w", err)
	}
	return row.toDomain(), true, nil
}

func (t *scoringTx) ListFixturesByRound(ctx context.Context, roundID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").
		From("fixtures").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := t.tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures in scoring tx: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (t *scoringTx) ListPredictionsByRound(ctx context.Context, roundID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").
		From("predictions").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("user_id", "fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions query: %w", err)
	}

	var rows []predictionTableModel
	if err := t.tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions in scoring tx: %w", err)
	}
	return predictionsToDomain(rows), nil
}

func (t *scoringTx) SetPredictionPoints(ctx context.Context, predictionID string, points int) error {
	query, args, err := qb.Update("predictions").
		Set("points", points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", predictionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set prediction points query: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set prediction points: %w", err)
	}
	return nil
}

func (t *scoringTx) SetRoundStatus(ctx context.Context, roundID, status string) error {
	query, args, err := qb.Update("rounds").
		Set("status", status).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set round status query: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set round status: %w", err)
	}
	return nil
}
