package openings

import "github.com/shatranj-dev/shatranj/internal/domain/model"

// Recommend truncates both ranked stat tables to their top n rows in
// caller-facing form. Tables shorter than n come back whole; never an
// error, never padding.
func Recommend(whiteStats, blackStats []model.OpeningStat, n int) (white, black []model.Recommendation) {
	return top(whiteStats, n), top(blackStats, n)
}

func top(stats []model.OpeningStat, n int) []model.Recommendation {
	if n > len(stats) {
		n = len(stats)
	}
	if n < 0 {
		n = 0
	}
	out := make([]model.Recommendation, 0, n)
	for _, s := range stats[:n] {
		out = append(out, model.Recommendation{
			ECO:         s.ECO,
			Opening:     s.Opening,
			GamesPlayed: s.GamesPlayed,
			ScorePct:    s.ScorePct,
		})
	}
	return out
}
