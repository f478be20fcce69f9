package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/scoring"
	"github.com/matchday/prediction-league/internal/platform/cache"
	"github.com/matchday/prediction-league/internal/platform/logging"
)

const defaultScoreDueWorkers = 4

// ScoringService settles rounds. ScoreRound runs as one transaction: either
// every prediction of the round gets its points and the round completes, or
// nothing is written. A corrupt prediction row is not a failure; it scores 0
// and is logged, so one bad row cannot hold a whole round hostage.
type ScoringService struct {
	store          scoring.Store
	roundRepo      round.Repository
	standingsCache *cache.Store
	logger         *logging.Logger
	maxWorkers     int
}

func NewScoringService(
	store scoring.Store,
	roundRepo round.Repository,
	standingsCache *cache.Store,
	logger *logging.Logger,
	maxWorkers int,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultScoreDueWorkers
	}
	return &ScoringService{
		store:          store,
		roundRepo:      roundRepo,
		standingsCache: standingsCache,
		logger:         logger,
		maxWorkers:     maxWorkers,
	}
}

// ScoreRoundResult summarizes one settled round.
type ScoreRoundResult struct {
	RoundID            string
	PredictionsScored  int
	CorruptPredictions int
}

func (s *ScoringService) ScoreRound(ctx context.Context, roundID string) (ScoreRoundResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreRound")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return ScoreRoundResult{}, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	result := ScoreRoundResult{RoundID: roundID}
	err := s.store.InTx(ctx, func(ctx context.Context, tx scoring.Tx) error {
		rnd, exists, err := tx.GetRoundForUpdate(ctx, roundID)
		if err != nil {
			return fmt.Errorf("lock round: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
		}
		if rnd.Status == round.StatusCompleted {
			return fmt.Errorf("%w: round %s is already scored", ErrInvalidState, roundID)
		}
		if rnd.Status != round.StatusClosed {
			return fmt.Errorf("%w: round must be CLOSED before scoring, status=%s", ErrInvalidState, rnd.Status)
		}

		fixtures, err := tx.ListFixturesByRound(ctx, roundID)
		if err != nil {
			return fmt.Errorf("list fixtures: %w", err)
		}
		if missing := missingResults(fixtures); len(missing) > 0 {
			return fmt.Errorf("%w: fixtures without result: %s", ErrIncompleteData, strings.Join(missing, ", "))
		}

		results := make(map[string]resultPair, len(fixtures))
		for _, f := range fixtures {
			results[f.ID] = resultPair{home: *f.HomeScore, away: *f.AwayScore}
		}

		predictions, err := tx.ListPredictionsByRound(ctx, roundID)
		if err != nil {
			return fmt.Errorf("list predictions: %w", err)
		}

		for _, p := range predictions {
			actual, ok := results[p.FixtureID]
			if !ok {
				// Fixture vanished from under the prediction; score it 0
				// rather than failing the round.
				s.logger.WarnContext(ctx, "prediction references unknown fixture, scoring 0",
					"prediction_id", p.ID, "fixture_id", p.FixtureID, "round_id", roundID)
				result.CorruptPredictions++
				if err := tx.SetPredictionPoints(ctx, p.ID, 0); err != nil {
					return fmt.Errorf("set prediction points: %w", err)
				}
				result.PredictionsScored++
				continue
			}

			if !prediction.ValidScoreline(p.HomeGoals, p.AwayGoals) {
				s.logger.WarnContext(ctx, "corrupt prediction scoreline, scoring 0",
					"prediction_id", p.ID, "user_id", p.UserID, "fixture_id", p.FixtureID,
					"home_goals", p.HomeGoals, "away_goals", p.AwayGoals)
				result.CorruptPredictions++
			}

			points := prediction.CalculatePoints(p, actual.home, actual.away)
			if err := tx.SetPredictionPoints(ctx, p.ID, points); err != nil {
				return fmt.Errorf("set prediction points: %w", err)
			}
			result.PredictionsScored++
		}

		// A round with no fixtures or no predictions still completes.
		if err := tx.SetRoundStatus(ctx, roundID, round.StatusCompleted); err != nil {
			return fmt.Errorf("complete round: %w", err)
		}
		return nil
	})
	if err != nil {
		return ScoreRoundResult{RoundID: roundID}, err
	}

	if s.standingsCache != nil {
		s.standingsCache.DeletePrefix(ctx, standingsCachePrefix)
	}

	s.logger.InfoContext(ctx, "round scored",
		"round_id", roundID,
		"predictions_scored", result.PredictionsScored,
		"corrupt_predictions", result.CorruptPredictions,
	)
	return result, nil
}

type resultPair struct {
	home int
	away int
}

func missingResults(items []fixture.Fixture) []string {
	var missing []string
	for _, f := range items {
		if !f.HasResult() {
			missing = append(missing, f.ID)
		}
	}
	sort.Strings(missing)
	return missing
}

// ScoreDueSummary reports the outcome of one batch scoring run.
type ScoreDueSummary struct {
	Attempted int
	Completed []string
	Skipped   map[string]string
}

// ScoreDueRounds settles every CLOSED round whose deadline has passed. Rounds
// are scored concurrently on a bounded pool; each round is its own
// transaction, so one failing round never blocks the others.
func (s *ScoringService) ScoreDueRounds(ctx context.Context, now time.Time) (ScoreDueSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreDueRounds")
	defer span.End()

	rounds, err := s.roundRepo.ListByStatus(ctx, round.StatusClosed)
	if err != nil {
		return ScoreDueSummary{}, fmt.Errorf("list closed rounds: %w", err)
	}

	var due []string
	for _, rnd := range rounds {
		if rnd.Deadline != nil && !rnd.Deadline.After(now) {
			due = append(due, rnd.ID)
		}
	}

	summary := ScoreDueSummary{
		Attempted: len(due),
		Skipped:   make(map[string]string),
	}
	if len(due) == 0 {
		return summary, nil
	}

	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return ScoreDueSummary{}, fmt.Errorf("create scoring pool: %w", err)
	}
	defer pool.Release()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, roundID := range due {
		roundID := roundID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			_, scoreErr := s.ScoreRound(ctx, roundID)
			mu.Lock()
			defer mu.Unlock()
			if scoreErr != nil {
				summary.Skipped[roundID] = scoreErr.Error()
				return
			}
			summary.Completed = append(summary.Completed, roundID)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			summary.Skipped[roundID] = submitErr.Error()
			mu.Unlock()
		}
	}
	wg.Wait()

	sort.Strings(summary.Completed)
	s.logger.InfoContext(ctx, "due rounds scored",
		"attempted", summary.Attempted,
		"completed", len(summary.Completed),
		"skipped", len(summary.Skipped),
	)
	return summary, nil
}
