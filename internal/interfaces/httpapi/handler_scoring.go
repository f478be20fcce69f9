package httpapi

import (
	"net/http"
	"time"
)

type scoreRoundDTO struct {
	RoundID            string `json:"roundId"`
	PredictionsScored  int    `json:"predictionsScored"`
	CorruptPredictions int    `json:"corruptPredictions"`
}

type scoreDueDTO struct {
	Attempted int               `json:"attempted"`
	Completed []string          `json:"completed"`
	Skipped   map[string]string `json:"skipped,omitempty"`
}

// ScoreRound settles one closed round in a single transaction.
func (h *Handler) ScoreRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreRound")
	defer span.End()

	roundID := r.PathValue("roundID")
	result, err := h.scoringService.ScoreRound(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "score round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreRoundDTO{
		RoundID:            result.RoundID,
		PredictionsScored:  result.PredictionsScored,
		CorruptPredictions: result.CorruptPredictions,
	})
}

// RunScoreDueJob settles every closed round whose deadline has passed.
func (h *Handler) RunScoreDueJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreDueJob")
	defer span.End()

	summary, err := h.scoringService.ScoreDueRounds(ctx, time.Now().UTC())
	if err != nil {
		h.logger.ErrorContext(ctx, "score due job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	completed := summary.Completed
	if completed == nil {
		completed = []string{}
	}
	writeSuccess(ctx, w, http.StatusOK, scoreDueDTO{
		Attempted: summary.Attempted,
		Completed: completed,
		Skipped:   summary.Skipped,
	})
}
