package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/round"
	idgen "github.com/matchday/prediction-league/internal/platform/id"
	"github.com/matchday/prediction-league/internal/platform/logging"
)

// FixtureService handles fixture setup and result entry. Results can only be
// recorded once the owning round is CLOSED and not yet scored, so the scoring
// preconditions see a frozen prediction set.
type FixtureService struct {
	roundRepo   round.Repository
	fixtureRepo fixture.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewFixtureService(
	roundRepo round.Repository,
	fixtureRepo fixture.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		roundRepo:   roundRepo,
		fixtureRepo: fixtureRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

type AddFixtureInput struct {
	RoundID   string
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
}

func (s *FixtureService) AddFixture(ctx context.Context, input AddFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.AddFixture")
	defer span.End()

	input.HomeTeam = strings.TrimSpace(input.HomeTeam)
	input.AwayTeam = strings.TrimSpace(input.AwayTeam)
	if input.HomeTeam == "" || input.AwayTeam == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: home and away team are required", ErrInvalidInput)
	}

	rnd, exists, err := s.roundRepo.GetByID(ctx, strings.TrimSpace(input.RoundID))
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: round=%s", ErrNotFound, input.RoundID)
	}
	if rnd.Status != round.StatusSetup {
		return fixture.Fixture{}, fmt.Errorf("%w: fixtures can only be added while round is SETUP, status=%s", ErrInvalidState, rnd.Status)
	}

	fixtureID, err := s.idGen.NewID()
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("generate fixture id: %w", err)
	}

	now := s.now().UTC()
	item := fixture.Fixture{
		ID:        fixtureID,
		RoundID:   rnd.ID,
		HomeTeam:  input.HomeTeam,
		AwayTeam:  input.AwayTeam,
		KickoffAt: input.KickoffAt.UTC(),
		Status:    fixture.StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.fixtureRepo.Create(ctx, item); err != nil {
		return fixture.Fixture{}, fmt.Errorf("create fixture: %w", err)
	}

	return item, nil
}

type EnterResultInput struct {
	FixtureID string
	HomeScore int
	AwayScore int
}

func (s *FixtureService) EnterResult(ctx context.Context, input EnterResultInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.EnterResult")
	defer span.End()

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, strings.TrimSpace(input.FixtureID))
	if err != nil {
		return fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: fixture=%s", ErrNotFound, input.FixtureID)
	}

	rnd, exists, err := s.roundRepo.GetByID(ctx, item.RoundID)
	if err != nil {
		return fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: round=%s", ErrNotFound, item.RoundID)
	}
	if rnd.Status != round.StatusClosed {
		return fmt.Errorf("%w: results can only be entered while round is CLOSED, status=%s", ErrInvalidState, rnd.Status)
	}

	updated, err := s.fixtureRepo.SetResult(ctx, item.ID, input.HomeScore, input.AwayScore)
	if err != nil {
		return fmt.Errorf("set fixture result: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: fixture=%s", ErrNotFound, input.FixtureID)
	}

	s.logger.InfoContext(ctx, "fixture result entered",
		"fixture_id", item.ID,
		"round_id", item.RoundID,
		"home_score", input.HomeScore,
		"away_score", input.AwayScore,
	)
	return nil
}

func (s *FixtureService) ListByRound(ctx context.Context, roundID string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByRound")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return nil, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	_, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}

	items, err := s.fixtureRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by round: %w", err)
	}
	return items, nil
}
