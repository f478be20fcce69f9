package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/usecase"
)

type addFixtureRequest struct {
	HomeTeam  string `json:"homeTeam" validate:"required,max=100"`
	AwayTeam  string `json:"awayTeam" validate:"required,max=100"`
	KickoffAt string `json:"kickoffAt" validate:"required"`
}

type enterResultRequest struct {
	HomeScore *int `json:"homeScore" validate:"required,min=0"`
	AwayScore *int `json:"awayScore" validate:"required,min=0"`
}

type fixtureDTO struct {
	ID        string `json:"id"`
	RoundID   string `json:"roundId"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	KickoffAt string `json:"kickoffAt"`
	HomeScore *int   `json:"homeScore,omitempty"`
	AwayScore *int   `json:"awayScore,omitempty"`
	Status    string `json:"status"`
}

func (h *Handler) AddFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFixture")
	defer span.End()

	roundID := r.PathValue("roundID")
	var req addFixtureRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kickoff, err := time.Parse(time.RFC3339, req.KickoffAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: kickoffAt must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.fixtureService.AddFixture(ctx, usecase.AddFixtureInput{
		RoundID:   roundID,
		HomeTeam:  req.HomeTeam,
		AwayTeam:  req.AwayTeam,
		KickoffAt: kickoff,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add fixture failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fixtureToDTO(item))
}

func (h *Handler) ListFixturesByRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByRound")
	defer span.End()

	roundID := r.PathValue("roundID")
	fixtures, err := h.fixtureService.ListByRound(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, item := range fixtures {
		items = append(items, fixtureToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) EnterFixtureResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnterFixtureResult")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req enterResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.fixtureService.EnterResult(ctx, usecase.EnterResultInput{
		FixtureID: fixtureID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "enter fixture result failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recorded"})
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:        v.ID,
		RoundID:   v.RoundID,
		HomeTeam:  v.HomeTeam,
		AwayTeam:  v.AwayTeam,
		KickoffAt: v.KickoffAt.UTC().Format(time.RFC3339),
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
		Status:    v.Status,
	}
}
