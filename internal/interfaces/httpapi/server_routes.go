package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rounds", handler.ListRounds)
	mux.HandleFunc("GET /v1/rounds/{roundID}", handler.GetRound)
	mux.HandleFunc("GET /v1/rounds/{roundID}/fixtures", handler.ListFixturesByRound)
	mux.HandleFunc("GET /v1/rounds/{roundID}/standings", handler.GetRoundStandings)
	mux.HandleFunc("GET /v1/standings", handler.GetOverallStandings)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/predictions", RequirePrincipal(http.HandlerFunc(handler.SubmitPrediction)))
	mux.Handle("GET /v1/rounds/{roundID}/predictions/me", RequirePrincipal(http.HandlerFunc(handler.ListMyPredictionsByRound)))
}

func registerOperatorRoutes(mux *http.ServeMux, handler *Handler, operatorToken string) {
	mux.Handle("POST /v1/rounds", RequireOperatorToken(operatorToken, http.HandlerFunc(handler.CreateRound)))
	mux.Handle("PUT /v1/rounds/{roundID}/deadline", RequireOperatorToken(operatorToken, http.HandlerFunc(handler.SetRoundDeadline)))
	mux.Handle("POST /v1/rounds/{roundID}/open", RequireOperatorToken(operatorToken, http.HandlerFunc(handler.OpenRound)))
	mux.Handle("POST /v1/rounds/{roundID}/close", RequireOperatorToken(operatorToken, http.HandlerFunc(handler.CloseRound)))
	mux.Handle("POST /v1/rounds/{roundID}/score", RequireOperatorToken(operatorToken, http.HandlerFunc(handler.ScoreRound)))
	mux.Handle("POST /v1/rounds/{roundID}/fixtures", RequireOperatorToken(operatorToken, http.HandlerFunc(handler.AddFixture)))
	mux.Handle("PUT /v1/fixtures/{fixtureID}/result", RequireOperatorToken(operatorToken, http.HandlerFunc(handler.EnterFixtureResult)))
	mux.Handle("POST /v1/internal/jobs/score-due", RequireOperatorToken(operatorToken, http.HandlerFunc(handler.RunScoreDueJob)))
}
