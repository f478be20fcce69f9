package prediction

const (
	OutcomeHomeWin = "HOME_WIN"
	OutcomeDraw    = "DRAW"
	OutcomeAwayWin = "AWAY_WIN"
)

const (
	pointsExactMatch   = 3
	pointsOutcomeMatch = 1
	jokerMultiplier    = 2
)

// ClassifyOutcome buckets a scoreline into home win, draw or away win.
func ClassifyOutcome(homeGoals, awayGoals int) string {
	switch {
	case homeGoals > awayGoals:
		return OutcomeHomeWin
	case homeGoals < awayGoals:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// ValidScoreline rejects goal counts that cannot come from a real match.
func ValidScoreline(homeGoals, awayGoals int) bool {
	return homeGoals >= 0 && awayGoals >= 0
}

// CalculatePoints converts one prediction plus the actual result into points:
// exact scoreline 3, matching outcome 1, otherwise 0, doubled by the joker.
// Corrupt inputs (negative goal counts) score 0 instead of failing; the call
// site is expected to log the anomaly.
func CalculatePoints(p Prediction, actualHome, actualAway int) int {
	if !ValidScoreline(p.HomeGoals, p.AwayGoals) || !ValidScoreline(actualHome, actualAway) {
		return 0
	}

	base := 0
	switch {
	case p.HomeGoals == actualHome && p.AwayGoals == actualAway:
		base = pointsExactMatch
	case ClassifyOutcome(p.HomeGoals, p.AwayGoals) == ClassifyOutcome(actualHome, actualAway):
		base = pointsOutcomeMatch
	}

	if p.IsJoker {
		return base * jokerMultiplier
	}
	return base
}
