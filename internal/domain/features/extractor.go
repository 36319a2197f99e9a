// Package features turns raw move sequences into per-game style features.
//
// The move scan replays coordinate-notation tokens over a legal-move
// simulator (github.com/notnil/chess). Tokens that fail to parse or are
// illegal in the current position are skipped without aborting the scan;
// real transcripts contain noise.
package features

import (
	"context"

	"github.com/notnil/chess"

	"github.com/shatranj-dev/shatranj/internal/domain/model"
)

// Default extraction constants.
const (
	// defaultEarlyCastleCutoff is the latest ply at which a loss of all
	// castling rights still counts as "castled early".
	defaultEarlyCastleCutoff = 20
)

// resultScores maps result tokens to numeric scores. Unrecognized or
// aborted tokens score 0.0.
var resultScores = map[string]float64{
	model.ResultWhiteWin: 1.0,
	model.ResultDraw:     0.5,
	"½-½":                0.5,
	model.ResultBlackWin: 0.0,
}

// Observation records what happened on one successfully applied ply.
type Observation struct {
	Ply     int    // 1-based index into the original token list
	Token   string // the raw move token
	Capture bool   // the move captured a piece
	Check   bool   // the move gave check
	Queen   bool   // a queen sits on the destination square after the move
}

// Scan is the output of replaying one move sequence: the ordered per-ply
// observations plus the aggregate counts consumed by feature extraction.
type Scan struct {
	Observations []Observation
	Trades       int // total captures
	Checks       int // total checking moves

	// FirstQueenPly is the ply of the first queen arrival on a
	// destination square, or 0 if it never happened.
	FirstQueenPly int

	// RightsLostPly is the first ply after which neither side retains any
	// castling right, or 0 if rights survive the whole game. This is an
	// approximation of "has castled": rights can also be forfeited by
	// king or rook moves without castling.
	RightsLostPly int

	// Skipped counts tokens that were unparsable or illegal.
	Skipped int
}

// ScanMoves replays tokens one at a time from the standard initial
// position and records per-ply observations. It never fails: malformed
// tokens are counted in Skipped and otherwise ignored.
func ScanMoves(tokens []string) Scan {
	var (
		scan Scan
		uci  chess.UCINotation
	)
	game := chess.NewGame()

	for i, token := range tokens {
		ply := i + 1

		decoded, err := uci.Decode(game.Position(), token)
		if err != nil {
			scan.Skipped++
			continue
		}

		// Resolve the decoded squares against the legal move set so the
		// applied move carries the simulator's capture/check tags.
		var legal *chess.Move
		for _, m := range game.ValidMoves() {
			if m.S1() == decoded.S1() && m.S2() == decoded.S2() && m.Promo() == decoded.Promo() {
				legal = m
				break
			}
		}
		if legal == nil {
			scan.Skipped++
			continue
		}
		if err := game.Move(legal); err != nil {
			scan.Skipped++
			continue
		}

		obs := Observation{
			Ply:     ply,
			Token:   token,
			Capture: legal.HasTag(chess.Capture) || legal.HasTag(chess.EnPassant),
			Check:   legal.HasTag(chess.Check),
		}

		pos := game.Position()
		if piece := pos.Board().Piece(legal.S2()); piece != chess.NoPiece && piece.Type() == chess.Queen {
			obs.Queen = true
			if scan.FirstQueenPly == 0 {
				scan.FirstQueenPly = ply
			}
		}

		if obs.Capture {
			scan.Trades++
		}
		if obs.Check {
			scan.Checks++
		}

		if scan.RightsLostPly == 0 && allCastlingRightsGone(pos) {
			scan.RightsLostPly = ply
		}

		scan.Observations = append(scan.Observations, obs)
	}

	return scan
}

// allCastlingRightsGone reports whether neither side can castle to
// either wing anymore.
func allCastlingRightsGone(pos *chess.Position) bool {
	rights := pos.CastleRights()
	return !rights.CanCastle(chess.White, chess.KingSide) &&
		!rights.CanCastle(chess.White, chess.QueenSide) &&
		!rights.CanCastle(chess.Black, chess.KingSide) &&
		!rights.CanCastle(chess.Black, chess.QueenSide)
}

// Extractor computes one FeatureRecord from one GameRecord.
type Extractor interface {
	// Extract is deterministic and free of hidden state: identical input
	// yields identical output across runs.
	Extract(ctx context.Context, game model.GameRecord) model.FeatureRecord
}

// Option applies a configuration option to the SimExtractor.
type Option func(*SimExtractor)

// WithEarlyCastleCutoff overrides the ply cutoff for "castled early".
func WithEarlyCastleCutoff(ply int) Option {
	return func(e *SimExtractor) {
		if ply > 0 {
			e.earlyCastleCutoff = ply
		}
	}
}

// SimExtractor implements Extractor over the legal-move simulator.
type SimExtractor struct {
	earlyCastleCutoff int
}

// NewSimExtractor creates an extractor with configuration options.
func NewSimExtractor(opts ...Option) *SimExtractor {
	e := &SimExtractor{
		earlyCastleCutoff: defaultEarlyCastleCutoff,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract replays the game's moves and maps the scan plus result token
// into a FeatureRecord.
//
// PlyCount counts every token in the original move list, not just the
// legal subset. That keeps game-length comparable across transcripts and
// surfaces malformed ones as unusually long games with low trade and
// check counts.
func (e *SimExtractor) Extract(_ context.Context, game model.GameRecord) model.FeatureRecord {
	scan := ScanMoves(game.Moves)
	plyCount := len(game.Moves)

	firstQueen := scan.FirstQueenPly
	if firstQueen == 0 {
		firstQueen = plyCount + 1 // sentinel: queen never arrived
	}

	return model.FeatureRecord{
		PlyCount:      plyCount,
		Trades:        scan.Trades,
		FirstQueenPly: firstQueen,
		CastledEarly:  scan.RightsLostPly > 0 && scan.RightsLostPly <= e.earlyCastleCutoff,
		Checks:        scan.Checks,
		ResultScore:   resultScores[game.Result],
	}
}
