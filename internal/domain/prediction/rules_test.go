package prediction

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculatePoints_Grid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		predHome   int
		predAway   int
		actualHome int
		actualAway int
		joker      bool
		want       int
	}{
		{"exact match", 2, 1, 2, 1, false, 3},
		{"exact match draw", 0, 0, 0, 0, false, 3},
		{"exact match joker doubles", 2, 1, 2, 1, true, 6},
		{"outcome match home win", 3, 1, 2, 0, false, 1},
		{"outcome match away win", 0, 2, 1, 3, false, 1},
		{"outcome match draw", 1, 1, 2, 2, false, 1},
		{"outcome match joker doubles", 3, 1, 2, 0, true, 2},
		{"miss predicted draw actual home win", 1, 1, 2, 0, false, 0},
		{"miss predicted home actual away", 2, 0, 0, 2, false, 0},
		{"miss joker still zero", 1, 1, 2, 0, true, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Prediction{HomeGoals: tc.predHome, AwayGoals: tc.predAway, IsJoker: tc.joker}
			require.Equal(t, tc.want, CalculatePoints(p, tc.actualHome, tc.actualAway))
		})
	}
}

func TestCalculatePoints_OutcomeVsExactOverBoundedRange(t *testing.T) {
	t.Parallel()

	for ph := 0; ph <= 4; ph++ {
		for pa := 0; pa <= 4; pa++ {
			for ah := 0; ah <= 4; ah++ {
				for aa := 0; aa <= 4; aa++ {
					p := Prediction{HomeGoals: ph, AwayGoals: pa}
					got := CalculatePoints(p, ah, aa)

					var want int
					switch {
					case ph == ah && pa == aa:
						want = 3
					case ClassifyOutcome(ph, pa) == ClassifyOutcome(ah, aa):
						want = 1
					}
					require.Equalf(t, want, got, "pred %d-%d actual %d-%d", ph, pa, ah, aa)

					joker := Prediction{HomeGoals: ph, AwayGoals: pa, IsJoker: true}
					require.Equalf(t, want*2, CalculatePoints(joker, ah, aa), "joker pred %d-%d actual %d-%d", ph, pa, ah, aa)
				}
			}
		}
	}
}

func TestCalculatePoints_CorruptInputsScoreZero(t *testing.T) {
	t.Parallel()

	require.Zero(t, CalculatePoints(Prediction{HomeGoals: -1, AwayGoals: 0}, 1, 0))
	require.Zero(t, CalculatePoints(Prediction{HomeGoals: 1, AwayGoals: 0}, -2, 0))
	require.Zero(t, CalculatePoints(Prediction{HomeGoals: 1, AwayGoals: -3, IsJoker: true}, 1, 0))
}

func TestClassifyOutcome(t *testing.T) {
	t.Parallel()

	require.Equal(t, OutcomeHomeWin, ClassifyOutcome(2, 0))
	require.Equal(t, OutcomeAwayWin, ClassifyOutcome(0, 1))
	require.Equal(t, OutcomeDraw, ClassifyOutcome(2, 2))
}
