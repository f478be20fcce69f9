package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/user"
	idgen "github.com/matchday/prediction-league/internal/platform/id"
	"github.com/matchday/prediction-league/internal/platform/logging"
)

// PredictionService accepts and amends scoreline predictions while the owning
// round is OPEN. Resubmitting for the same fixture overwrites the earlier
// guess; a user gets at most one joker per round.
type PredictionService struct {
	roundRepo      round.Repository
	fixtureRepo    fixture.Repository
	predictionRepo prediction.Repository
	userRepo       user.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewPredictionService(
	roundRepo round.Repository,
	fixtureRepo fixture.Repository,
	predictionRepo prediction.Repository,
	userRepo user.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		roundRepo:      roundRepo,
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

type SubmitPredictionInput struct {
	UserID    string
	FixtureID string
	HomeGoals int
	AwayGoals int
	IsJoker   bool
}

func (s *PredictionService) SubmitPrediction(ctx context.Context, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SubmitPrediction")
	defer span.End()

	if !prediction.ValidScoreline(input.HomeGoals, input.AwayGoals) {
		return prediction.Prediction{}, fmt.Errorf("%w: predicted goals must be non-negative", ErrInvalidInput)
	}

	principal, exists, err := s.userRepo.GetByID(ctx, strings.TrimSpace(input.UserID))
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: user=%s", ErrNotFound, input.UserID)
	}
	if !principal.IsPlayer() {
		return prediction.Prediction{}, fmt.Errorf("%w: only players submit predictions", ErrInvalidInput)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, strings.TrimSpace(input.FixtureID))
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, input.FixtureID)
	}

	rnd, exists, err := s.roundRepo.GetByID(ctx, item.RoundID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: round=%s", ErrNotFound, item.RoundID)
	}
	if rnd.Status != round.StatusOpen {
		return prediction.Prediction{}, fmt.Errorf("%w: predictions are only accepted while round is OPEN, status=%s", ErrInvalidState, rnd.Status)
	}

	if input.IsJoker {
		if err := s.checkJokerAvailable(ctx, principal.ID, rnd.ID, item.ID); err != nil {
			return prediction.Prediction{}, err
		}
	}

	existing, hasExisting, err := s.predictionRepo.GetByUserAndFixture(ctx, principal.ID, item.ID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get prediction: %w", err)
	}

	now := s.now().UTC()
	stored := prediction.Prediction{
		UserID:    principal.ID,
		FixtureID: item.ID,
		RoundID:   rnd.ID,
		HomeGoals: input.HomeGoals,
		AwayGoals: input.AwayGoals,
		IsJoker:   input.IsJoker,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if hasExisting {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		predictionID, err := s.idGen.NewID()
		if err != nil {
			return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
		}
		stored.ID = predictionID
	}

	if err := s.predictionRepo.Upsert(ctx, stored); err != nil {
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}

	s.logger.InfoContext(ctx, "prediction submitted",
		"prediction_id", stored.ID,
		"user_id", principal.ID,
		"fixture_id", item.ID,
		"round_id", rnd.ID,
		"joker", stored.IsJoker,
	)
	return stored, nil
}

// checkJokerAvailable rejects a joker submission when the user already played
// their joker on a different fixture of the same round. Re-submitting the
// joker on the same fixture is fine, the upsert just overwrites it.
func (s *PredictionService) checkJokerAvailable(ctx context.Context, userID, roundID, fixtureID string) error {
	items, err := s.predictionRepo.ListByUserAndRound(ctx, userID, roundID)
	if err != nil {
		return fmt.Errorf("list predictions by user and round: %w", err)
	}
	for _, item := range items {
		if item.IsJoker && item.FixtureID != fixtureID {
			return fmt.Errorf("%w: joker already used in round %s on fixture %s", ErrInvalidInput, roundID, item.FixtureID)
		}
	}
	return nil
}

func (s *PredictionService) ListByUserAndRound(ctx context.Context, userID, roundID string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListByUserAndRound")
	defer span.End()

	userID = strings.TrimSpace(userID)
	roundID = strings.TrimSpace(roundID)
	if userID == "" || roundID == "" {
		return nil, fmt.Errorf("%w: user id and round id are required", ErrInvalidInput)
	}

	items, err := s.predictionRepo.ListByUserAndRound(ctx, userID, roundID)
	if err != nil {
		return nil, fmt.Errorf("list predictions by user and round: %w", err)
	}
	return items, nil
}
