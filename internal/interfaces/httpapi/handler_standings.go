package httpapi

import (
	"net/http"
	"strings"

	"github.com/matchday/prediction-league/internal/usecase"
)

type standingsRowDTO struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
	Rank        int    `json:"rank"`
	// Movement is null when the user has no previous snapshot.
	Movement *int `json:"movement"`
}

type standingsDTO struct {
	Scope string            `json:"scope"`
	Rows  []standingsRowDTO `json:"rows"`
}

// GetOverallStandings serves the table summed across all completed rounds.
func (h *Handler) GetOverallStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverallStandings")
	defer span.End()

	view, err := h.standingsService.CalculateStandings(ctx, usecase.StandingsInput{
		MemberFilter: memberFilterFromQuery(r),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "overall standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(view))
}

// GetRoundStandings serves the table for one completed round.
func (h *Handler) GetRoundStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoundStandings")
	defer span.End()

	roundID := r.PathValue("roundID")
	view, err := h.standingsService.CalculateStandings(ctx, usecase.StandingsInput{
		RoundID:      roundID,
		MemberFilter: memberFilterFromQuery(r),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "round standings failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(view))
}

func memberFilterFromQuery(r *http.Request) []string {
	var out []string
	for _, raw := range r.URL.Query()["member"] {
		if id := strings.TrimSpace(raw); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func standingsToDTO(view usecase.StandingsView) standingsDTO {
	rows := make([]standingsRowDTO, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, standingsRowDTO{
			UserID:      row.UserID,
			Name:        row.Name,
			TotalPoints: row.TotalPoints,
			Rank:        row.Rank,
			Movement:    row.Movement,
		})
	}
	return standingsDTO{Scope: view.Scope, Rows: rows}
}
