// Package openings computes per-opening performance statistics over a
// peer game set and ranks them for recommendation.
package openings

import (
	"math"
	"sort"

	"github.com/shatranj-dev/shatranj/internal/domain/model"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMinGames discards opening groups with fewer than n games. Zero
// keeps every group.
func WithMinGames(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minGames = n
		}
	}
}

// Engine computes opening statistics. It holds no per-request state and
// is safe for concurrent use.
type Engine struct {
	minGames int
}

// NewEngine creates an opening statistics engine with options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// groupKey identifies one opening within a filtered game set.
type groupKey struct {
	eco  string
	name string
}

// accumulator collects per-group counts during the single pass over the
// game table.
type accumulator struct {
	games int
	wins  int
	draws int
}

// Compute filters games to those where the player on the selected side
// belongs to the peer set (the opposing side need not be a peer), groups
// them by (opening code, opening name), and scores each group:
//
//	score_pct = (wins + 0.5*draws) / games_played
//	weight    = score_pct * log10(games_played + 1)
//
// The logarithmic term rewards sample-size confidence without letting
// raw volume dominate a mediocre score. Rows come back ordered by weight
// descending, then games_played descending, then group-discovery order.
func (e *Engine) Compute(games []model.GameRecord, peers []string, side model.Side) ([]model.OpeningStat, error) {
	if !side.Valid() {
		return nil, ErrInvalidSide
	}

	peerSet := make(map[string]struct{}, len(peers))
	for _, p := range peers {
		peerSet[p] = struct{}{}
	}

	winToken := side.WinningResult()
	groups := make(map[groupKey]*accumulator)
	var order []groupKey

	for _, g := range games {
		player := g.White
		if side == model.SideBlack {
			player = g.Black
		}
		if _, ok := peerSet[player]; !ok {
			continue
		}

		key := groupKey{eco: g.ECO, name: g.Opening}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
			order = append(order, key)
		}
		acc.games++
		switch g.Result {
		case winToken:
			acc.wins++
		case model.ResultDraw:
			acc.draws++
		}
	}

	stats := make([]model.OpeningStat, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		if acc.games < e.minGames {
			continue
		}
		scorePct := (float64(acc.wins) + 0.5*float64(acc.draws)) / float64(acc.games)
		stats = append(stats, model.OpeningStat{
			ECO:         key.eco,
			Opening:     key.name,
			GamesPlayed: acc.games,
			Wins:        acc.wins,
			Draws:       acc.draws,
			ScorePct:    scorePct,
			Weight:      scorePct * math.Log10(float64(acc.games)+1),
		})
	}

	// Stable sort keeps discovery order for full ties.
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Weight != stats[j].Weight {
			return stats[i].Weight > stats[j].Weight
		}
		return stats[i].GamesPlayed > stats[j].GamesPlayed
	})

	return stats, nil
}
