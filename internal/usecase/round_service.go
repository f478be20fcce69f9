package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchday/prediction-league/internal/domain/round"
	idgen "github.com/matchday/prediction-league/internal/platform/id"
	"github.com/matchday/prediction-league/internal/platform/logging"
)

// RoundService drives the round lifecycle. The CLOSED -> COMPLETED move is
// reserved for the scoring transaction and rejected here.
type RoundService struct {
	roundRepo round.Repository
	idGen     idgen.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewRoundService(roundRepo round.Repository, idGen idgen.Generator, logger *logging.Logger) *RoundService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RoundService{
		roundRepo: roundRepo,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

type CreateRoundInput struct {
	Name     string
	Deadline *time.Time
}

func (s *RoundService) CreateRound(ctx context.Context, input CreateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.CreateRound")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return round.Round{}, fmt.Errorf("%w: round name is required", ErrInvalidInput)
	}

	roundID, err := s.idGen.NewID()
	if err != nil {
		return round.Round{}, fmt.Errorf("generate round id: %w", err)
	}

	now := s.now().UTC()
	item := round.Round{
		ID:        roundID,
		Name:      name,
		Status:    round.StatusSetup,
		Deadline:  input.Deadline,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.roundRepo.Create(ctx, item); err != nil {
		return round.Round{}, fmt.Errorf("create round: %w", err)
	}

	s.logger.InfoContext(ctx, "round created", "round_id", roundID, "name", name)
	return item, nil
}

func (s *RoundService) GetRound(ctx context.Context, roundID string) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.GetRound")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return round.Round{}, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	return item, nil
}

func (s *RoundService) ListRounds(ctx context.Context) ([]round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.ListRounds")
	defer span.End()

	items, err := s.roundRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return items, nil
}

func (s *RoundService) SetDeadline(ctx context.Context, roundID string, deadline time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.SetDeadline")
	defer span.End()

	item, err := s.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	if item.Status != round.StatusSetup {
		return fmt.Errorf("%w: deadline can only change while round is SETUP, status=%s", ErrInvalidState, item.Status)
	}

	updated, err := s.roundRepo.SetDeadline(ctx, item.ID, deadline.UTC())
	if err != nil {
		return fmt.Errorf("set round deadline: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	return nil
}

// OpenRound moves SETUP -> OPEN; predictions become writable.
func (s *RoundService) OpenRound(ctx context.Context, roundID string) error {
	return s.transition(ctx, roundID, round.StatusOpen)
}

// CloseRound moves OPEN -> CLOSED; fixtures and predictions freeze.
func (s *RoundService) CloseRound(ctx context.Context, roundID string) error {
	return s.transition(ctx, roundID, round.StatusClosed)
}

func (s *RoundService) transition(ctx context.Context, roundID, target string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.transition")
	defer span.End()

	if round.NormalizeStatus(target) == round.StatusCompleted {
		return fmt.Errorf("%w: COMPLETED is only reachable through scoring", ErrInvalidState)
	}

	item, err := s.GetRound(ctx, roundID)
	if err != nil {
		return err
	}

	if err := round.ValidateTransition(item, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	updated, err := s.roundRepo.UpdateStatus(ctx, item.ID, item.Status, target)
	if err != nil {
		return fmt.Errorf("update round status: %w", err)
	}
	if !updated {
		// Lost a race with a concurrent transition; the stored status moved on.
		return fmt.Errorf("%w: round %s is no longer %s", ErrInvalidState, roundID, item.Status)
	}

	s.logger.InfoContext(ctx, "round transitioned", "round_id", roundID, "from", item.Status, "to", target)
	return nil
}
