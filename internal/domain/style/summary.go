// Package style summarizes per-game features into per-player style
// vectors and models the reference population's style space.
package style

import (
	"context"

	"github.com/shatranj-dev/shatranj/internal/domain/features"
	"github.com/shatranj-dev/shatranj/internal/domain/model"
)

// longGameCutoff is the ply count above which a game counts as long.
const longGameCutoff = 80

// Summarize aggregates one player's FeatureRecords into a StyleVector:
// arithmetic means for continuous fields, indicator means for the
// proportion fields. It fails on an empty collection.
func Summarize(player string, recs []model.FeatureRecord) (model.StyleVector, error) {
	if len(recs) == 0 {
		return model.StyleVector{}, ErrEmptyPopulation
	}

	v := model.StyleVector{Player: player}
	for _, r := range recs {
		v.AvgMoves += float64(r.PlyCount)
		if r.PlyCount > longGameCutoff {
			v.PctLongGames++
		}
		v.AvgTrades += float64(r.Trades)
		v.AvgQueenMove += float64(r.FirstQueenPly)
		if r.CastledEarly {
			v.PctCastledEarly++
		}
		v.AvgChecks += float64(r.Checks)
		v.WinRate += r.ResultScore
		switch r.ResultScore {
		case 1.0:
			v.PctWins++
		case 0.5:
			v.PctDraws++
		case 0.0:
			v.PctLosses++
		}
	}

	n := float64(len(recs))
	v.AvgMoves /= n
	v.PctLongGames /= n
	v.AvgTrades /= n
	v.AvgQueenMove /= n
	v.PctCastledEarly /= n
	v.AvgChecks /= n
	v.WinRate /= n
	v.PctWins /= n
	v.PctDraws /= n
	v.PctLosses /= n

	return v, nil
}

// BuildReferenceVectors extracts features for every reference game and
// summarizes them per player.
//
// Every game is attributed twice: once under the white identity and once
// under the black identity, before grouping. The doubling is intentional.
// Style and performance are evaluated symmetrically regardless of side,
// so the number of attributed rows is exactly twice the game count.
//
// The second return value is that attributed row count.
func BuildReferenceVectors(ctx context.Context, ex features.Extractor, games []model.GameRecord) ([]model.StyleVector, int, error) {
	if len(games) == 0 {
		return nil, 0, ErrEmptyPopulation
	}

	byPlayer := make(map[string][]model.FeatureRecord)
	var order []string
	attributed := 0

	attribute := func(player string, rec model.FeatureRecord) {
		if _, seen := byPlayer[player]; !seen {
			order = append(order, player)
		}
		byPlayer[player] = append(byPlayer[player], rec)
		attributed++
	}

	for _, g := range games {
		rec := ex.Extract(ctx, g)
		attribute(g.White, rec)
		attribute(g.Black, rec)
	}

	vectors := make([]model.StyleVector, 0, len(order))
	for _, player := range order {
		v, err := Summarize(player, byPlayer[player])
		if err != nil {
			return nil, attributed, err
		}
		vectors = append(vectors, v)
	}
	return vectors, attributed, nil
}
