package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/usecase"
)

type submitPredictionRequest struct {
	FixtureID string `json:"fixtureId" validate:"required"`
	HomeGoals *int   `json:"homeGoals" validate:"required,min=0"`
	AwayGoals *int   `json:"awayGoals" validate:"required,min=0"`
	IsJoker   bool   `json:"isJoker"`
}

type predictionDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	FixtureID string `json:"fixtureId"`
	RoundID   string `json:"roundId"`
	HomeGoals int    `json:"homeGoals"`
	AwayGoals int    `json:"awayGoals"`
	IsJoker   bool   `json:"isJoker"`
	Points    *int   `json:"points,omitempty"`
}

func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitPredictionRequest
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

	item, err := h.predictionService.SubmitPrediction(ctx, usecase.SubmitPredictionInput{
		UserID:    principal.UserID,
		FixtureID: req.FixtureID,
		HomeGoals: *req.HomeGoals,
		AwayGoals: *req.AwayGoals,
		IsJoker:   req.IsJoker,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit prediction failed",
			"user_id", principal.UserID, "fixture_id", req.FixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(item))
}

func (h *Handler) ListMyPredictionsByRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictionsByRound")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	predictions, err := h.predictionService.ListByUserAndRound(ctx, principal.UserID, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed",
			"user_id", principal.UserID, "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]predictionDTO, 0, len(predictions))
	for _, item := range predictions {
		items = append(items, predictionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func predictionToDTO(v prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:        v.ID,
		UserID:    v.UserID,
		FixtureID: v.FixtureID,
		RoundID:   v.RoundID,
		HomeGoals: v.HomeGoals,
		AwayGoals: v.AwayGoals,
		IsJoker:   v.IsJoker,
		Points:    v.Points,
	}
}
