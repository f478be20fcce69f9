package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchday/prediction-league/internal/domain/round"
	qb "github.com/matchday/prediction-league/internal/platform/querybuilder"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) GetByID(ctx context.Context, roundID string) (round.Round, bool, error) {
	query, args, err := qb.Select("*").
		From("rounds").
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get round query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RoundRepository) List(ctx context.Context) ([]round.Round, error) {
	query, args, err := qb.Select("*").
		From("rounds").
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return roundsToDomain(rows), nil
}

func (r *RoundRepository) ListByStatus(ctx context.Context, status string) ([]round.Round, error) {
	query, args, err := qb.Select("*").
		From("rounds").
		Where(qb.Eq("status", status)).
		OrderBy("deadline", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds by status query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds by status: %w", err)
	}
	return roundsToDomain(rows), nil
}

func (r *RoundRepository) Create(ctx context.Context, item round.Round) error {
	insertModel := roundInsertModel{
		ID:       item.ID,
		Name:     item.Name,
		Status:   item.Status,
		Deadline: item.Deadline,
	}
	query, args, err := qb.InsertModel("rounds", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

func (r *RoundRepository) SetDeadline(ctx context.Context, roundID string, deadline time.Time) (bool, error) {
	query, args, err := qb.Update("rounds").
		Set("deadline", deadline).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set round deadline query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set round deadline: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set round deadline rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdateStatus only succeeds when the stored status still equals from, which
// makes concurrent lifecycle moves race-free without an explicit lock.
func (r *RoundRepository) UpdateStatus(ctx context.Context, roundID, from, to string) (bool, error) {
	query, args, err := qb.Update("rounds").
		Set("status", to).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", roundID),
			qb.Eq("status", from),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update round status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update round status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update round status rows affected: %w", err)
	}
	return affected > 0, nil
}

func roundsToDomain(rows []roundTableModel) []round.Round {
	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
