// Package model contains domain models passed between layers.
package model

import "strings"

// Result tokens as they appear in game transcripts and the reference table.
const (
	ResultWhiteWin = "1-0"
	ResultBlackWin = "0-1"
	ResultDraw     = "1/2-1/2"
)

// Side selects which color's opening choices are under study.
type Side string

// Side values accepted by the opening statistics engine.
const (
	SideWhite Side = "white"
	SideBlack Side = "black"
)

// Valid reports whether s is a recognized side selector.
func (s Side) Valid() bool {
	return s == SideWhite || s == SideBlack
}

// WinningResult returns the literal result token that counts as a win
// for this side.
func (s Side) WinningResult() string {
	if s == SideBlack {
		return ResultBlackWin
	}
	return ResultWhiteWin
}

// GameRecord is one parsed game. Immutable once parsed.
type GameRecord struct {
	White       string   // white player id
	Black       string   // black player id
	Result      string   // result token, e.g. "1-0"
	ECO         string   // opening code
	Opening     string   // opening name
	TimeControl string   // time-control label, e.g. "300+3"
	Moves       []string // ordered coordinate-notation move tokens
}

// Players returns both player identities of the game.
func (g GameRecord) Players() (white, black string) {
	return g.White, g.Black
}

// MatchesTimeControl reports whether the game's time-control label
// contains the given substring. An empty label never matches.
func (g GameRecord) MatchesTimeControl(label string) bool {
	return g.TimeControl != "" && strings.Contains(g.TimeControl, label)
}

// FilterTimeControl returns the subset of games matching the time-control
// label. An empty label returns games unchanged.
func FilterTimeControl(games []GameRecord, label string) []GameRecord {
	if label == "" {
		return games
	}
	out := make([]GameRecord, 0, len(games))
	for _, g := range games {
		if g.MatchesTimeControl(label) {
			out = append(out, g)
		}
	}
	return out
}

// FeatureRecord holds the per-game style features derived from one
// GameRecord. Derived, never persisted.
type FeatureRecord struct {
	PlyCount      int     // tokens in the original move list, legal or not
	Trades        int     // captures observed over the legal subset
	FirstQueenPly int     // ply of first queen arrival; PlyCount+1 if never
	CastledEarly  bool    // all castling rights gone by ply 20 (approximation)
	Checks        int     // checking moves observed
	ResultScore   float64 // 1.0 win, 0.5 draw, 0.0 loss/unknown
}

// StyleVector is a per-player numeric summary of playing style, the mean
// of each feature over that player's FeatureRecords.
type StyleVector struct {
	Player          string  `json:"player"`
	AvgMoves        float64 `json:"avg_moves"`
	PctLongGames    float64 `json:"pct_long_games"`
	AvgTrades       float64 `json:"avg_trades"`
	AvgQueenMove    float64 `json:"avg_queen_move"`
	PctCastledEarly float64 `json:"pct_castled_early"`
	AvgChecks       float64 `json:"avg_checks"`
	WinRate         float64 `json:"win_rate"`
	PctWins         float64 `json:"pct_wins"`
	PctDraws        float64 `json:"pct_draws"`
	PctLosses       float64 `json:"pct_losses"`
}

// NumStyleFeatures is the dimensionality of the style space.
const NumStyleFeatures = 10

// StyleFeatureNames lists the feature columns in canonical order. The
// order must match StyleVector.Values and the reference vector table.
func StyleFeatureNames() []string {
	return []string{
		"avg_moves",
		"pct_long_games",
		"avg_trades",
		"avg_queen_move",
		"pct_castled_early",
		"avg_checks",
		"win_rate",
		"pct_wins",
		"pct_draws",
		"pct_losses",
	}
}

// Values returns the vector's features in canonical order.
func (v StyleVector) Values() []float64 {
	return []float64{
		v.AvgMoves,
		v.PctLongGames,
		v.AvgTrades,
		v.AvgQueenMove,
		v.PctCastledEarly,
		v.AvgChecks,
		v.WinRate,
		v.PctWins,
		v.PctDraws,
		v.PctLosses,
	}
}

// StyleVectorFromValues builds a StyleVector from features in canonical
// order. It is the inverse of Values.
func StyleVectorFromValues(player string, vals []float64) StyleVector {
	v := StyleVector{Player: player}
	if len(vals) != NumStyleFeatures {
		return v
	}
	v.AvgMoves = vals[0]
	v.PctLongGames = vals[1]
	v.AvgTrades = vals[2]
	v.AvgQueenMove = vals[3]
	v.PctCastledEarly = vals[4]
	v.AvgChecks = vals[5]
	v.WinRate = vals[6]
	v.PctWins = vals[7]
	v.PctDraws = vals[8]
	v.PctLosses = vals[9]
	return v
}

// OpeningStat is one row of per-opening performance within a filtered
// game set. Ephemeral, recomputed per request.
type OpeningStat struct {
	ECO         string  `json:"eco"`
	Opening     string  `json:"opening"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Draws       int     `json:"draws"`
	ScorePct    float64 `json:"score_pct"`
	Weight      float64 `json:"weight"`
}

// Recommendation is the caller-facing shape of one recommended opening.
type Recommendation struct {
	ECO         string  `json:"eco"`
	Opening     string  `json:"opening"`
	GamesPlayed int     `json:"games_played"`
	ScorePct    float64 `json:"score_pct"`
}

// RecommendResult is the full response of one recommendation run.
type RecommendResult struct {
	TopPeers []string         `json:"top_peers"`
	White    []Recommendation `json:"white_recommendations"`
	Black    []Recommendation `json:"black_recommendations"`
}
