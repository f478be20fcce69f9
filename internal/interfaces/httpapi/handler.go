package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/matchday/prediction-league/internal/usecase"
)

type Handler struct {
	roundService      *usecase.RoundService
	fixtureService    *usecase.FixtureService
	predictionService *usecase.PredictionService
	scoringService    *usecase.ScoringService
	standingsService  *usecase.StandingsService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	roundService *usecase.RoundService,
	fixtureService *usecase.FixtureService,
	predictionService *usecase.PredictionService,
	scoringService *usecase.ScoringService,
	standingsService *usecase.StandingsService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		roundService:      roundService,
		fixtureService:    fixtureService,
		predictionService: predictionService,
		scoringService:    scoringService,
		standingsService:  standingsService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
