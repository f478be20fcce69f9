package standings

import "sort"

// Row is one ranked standings entry.
type Row struct {
	UserID      string
	Name        string
	TotalPoints int
	Rank        int
}

// Rank sorts rows and assigns competition ranks in place: descending by
// points, ties broken by name then user id, rank = 1 + count of rows with
// strictly more points. Tied rows share a rank and the next distinct point
// value skips ahead ([10,10,7] ranks as [1,1,3]).
func Rank(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].UserID < rows[j].UserID
	})

	for idx := range rows {
		if idx > 0 && rows[idx].TotalPoints == rows[idx-1].TotalPoints {
			rows[idx].Rank = rows[idx-1].Rank
			continue
		}
		rows[idx].Rank = idx + 1
	}
}

// Movement diffs two ranked snapshots into per-user rank deltas, positive
// meaning the user moved up. Users absent from the previous snapshot map to
// nil: "no data" must stay distinguishable from "unchanged".
func Movement(current, previous []Row) map[string]*int {
	previousRank := make(map[string]int, len(previous))
	for _, row := range previous {
		previousRank[row.UserID] = row.Rank
	}

	out := make(map[string]*int, len(current))
	for _, row := range current {
		prev, ok := previousRank[row.UserID]
		if !ok {
			out[row.UserID] = nil
			continue
		}
		delta := prev - row.Rank
		out[row.UserID] = &delta
	}
	return out
}
