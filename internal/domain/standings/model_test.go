package standings

import "testing"

func TestRank_CompetitionRanking(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{UserID: "u1", Name: "Ana", TotalPoints: 5},
		{UserID: "u2", Name: "Ben", TotalPoints: 10},
		{UserID: "u3", Name: "Cid", TotalPoints: 7},
		{UserID: "u4", Name: "Dan", TotalPoints: 10},
		{UserID: "u5", Name: "Eve", TotalPoints: 5},
		{UserID: "u6", Name: "Fay", TotalPoints: 5},
	}

	Rank(rows)

	wantPoints := []int{10, 10, 7, 5, 5, 5}
	wantRanks := []int{1, 1, 3, 4, 4, 4}
	for idx := range rows {
		if rows[idx].TotalPoints != wantPoints[idx] {
			t.Fatalf("row %d: points got=%d want=%d", idx, rows[idx].TotalPoints, wantPoints[idx])
		}
		if rows[idx].Rank != wantRanks[idx] {
			t.Fatalf("row %d: rank got=%d want=%d (dense ranking is wrong here)", idx, rows[idx].Rank, wantRanks[idx])
		}
	}
}

func TestRank_TieBreakByNameThenID(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{UserID: "u2", Name: "Zoe", TotalPoints: 4},
		{UserID: "u3", Name: "Amy", TotalPoints: 4},
		{UserID: "u1", Name: "Amy", TotalPoints: 4},
	}

	Rank(rows)

	if rows[0].UserID != "u1" || rows[1].UserID != "u3" || rows[2].UserID != "u2" {
		t.Fatalf("unexpected tie-break order: %+v", rows)
	}
	for idx := range rows {
		if rows[idx].Rank != 1 {
			t.Fatalf("all tied rows must share rank 1, got %+v", rows)
		}
	}
}

func TestMovement_AbsentUserIsNilNotZero(t *testing.T) {
	t.Parallel()

	current := []Row{
		{UserID: "u1", Rank: 1},
		{UserID: "u2", Rank: 2},
		{UserID: "u3", Rank: 3},
	}
	previous := []Row{
		{UserID: "u1", Rank: 2},
		{UserID: "u2", Rank: 2},
	}

	got := Movement(current, previous)

	if got["u1"] == nil || *got["u1"] != 1 {
		t.Fatalf("u1 movement: got=%v want=1", got["u1"])
	}
	if got["u2"] == nil || *got["u2"] != 0 {
		t.Fatalf("u2 movement: got=%v want=0", got["u2"])
	}
	if delta, ok := got["u3"]; !ok || delta != nil {
		t.Fatalf("u3 movement must be present and nil, got=%v ok=%t", delta, ok)
	}
}
