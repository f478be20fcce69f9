package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/usecase"
)

type createRoundRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Deadline string `json:"deadline" validate:"omitempty"`
}

type setDeadlineRequest struct {
	Deadline string `json:"deadline" validate:"required"`
}

type roundDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Deadline string `json:"deadline,omitempty"`
}

func (h *Handler) CreateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRound")
	defer span.End()

	var req createRoundRequest
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

	input := usecase.CreateRoundInput{Name: req.Name}
	if strings.TrimSpace(req.Deadline) != "" {
		deadline, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: deadline must be RFC3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		input.Deadline = &deadline
	}

	item, err := h.roundService.CreateRound(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create round failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, roundToDTO(item))
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRounds")
	defer span.End()

	rounds, err := h.roundService.ListRounds(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list rounds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roundDTO, 0, len(rounds))
	for _, item := range rounds {
		items = append(items, roundToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRound")
	defer span.End()

	roundID := r.PathValue("roundID")
	item, err := h.roundService.GetRound(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "get round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item))
}

func (h *Handler) SetRoundDeadline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetRoundDeadline")
	defer span.End()

	roundID := r.PathValue("roundID")
	var req setDeadlineRequest
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

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: deadline must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.roundService.SetDeadline(ctx, roundID, deadline); err != nil {
		h.logger.WarnContext(ctx, "set round deadline failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	item, err := h.roundService.GetRound(ctx, roundID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item))
}

func (h *Handler) OpenRound(w http.ResponseWriter, r *http.Request) {
	h.transitionRound(w, r, "open")
}

func (h *Handler) CloseRound(w http.ResponseWriter, r *http.Request) {
	h.transitionRound(w, r, "close")
}

func (h *Handler) transitionRound(w http.ResponseWriter, r *http.Request, action string) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.transitionRound")
	defer span.End()

	roundID := r.PathValue("roundID")

	var err error
	switch action {
	case "open":
		err = h.roundService.OpenRound(ctx, roundID)
	default:
		err = h.roundService.CloseRound(ctx, roundID)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "round transition failed", "round_id", roundID, "action", action, "error", err)
		writeError(ctx, w, err)
		return
	}

	item, err := h.roundService.GetRound(ctx, roundID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item))
}

func roundToDTO(v round.Round) roundDTO {
	out := roundDTO{
		ID:     v.ID,
		Name:   v.Name,
		Status: v.Status,
	}
	if v.Deadline != nil {
		out.Deadline = v.Deadline.UTC().Format(time.RFC3339)
	}
	return out
}
