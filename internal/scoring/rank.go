package scoring

import "sort"

// Ranked is one candidate in a ranking. ID and Filename identify the
// candidate; Score is the weighted final score.
type Ranked struct {
	ID       string
	Filename string
	Score    float64
}

// Rank sorts candidates by final score descending. Ties are broken by
// filename ascending, then by ID ascending, so the same inputs always
// produce the same ordering.
func Rank(candidates []Ranked) []Ranked {
	ranked := make([]Ranked, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Filename != ranked[j].Filename {
			return ranked[i].Filename < ranked[j].Filename
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
