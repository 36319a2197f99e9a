// Command genref generates a synthetic reference dataset for local
// development: a game table of random legal playouts between a pool of
// synthetic elite players, plus the matching style-vector table built
// with the real extraction and summarization pipeline.
package main

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"github.com/shatranj-dev/shatranj/internal/domain/features"
	"github.com/shatranj-dev/shatranj/internal/domain/model"
	"github.com/shatranj-dev/shatranj/internal/domain/style"
)

// Playout bounds.
const (
	minPlies = 20
	maxPlies = 120
)

var timeControls = []string{"60+0", "180+0", "300+3", "600+5", "1800+20"}

var sampleOpenings = []struct{ eco, name string }{
	{"B20", "Sicilian Defence"},
	{"C50", "Italian Game"},
	{"D02", "Queen's Pawn Game"},
	{"A04", "Zukertort Opening"},
	{"E60", "King's Indian Defence"},
	{"C00", "French Defence"},
	{"B10", "Caro-Kann Defence"},
	{"A10", "English Opening"},
}

func main() {
	var (
		gameCount   = flag.Int("games", 500, "number of reference games to generate")
		playerCount = flag.Int("players", 40, "size of the synthetic player pool")
		seed        = flag.Int64("seed", 42, "rng seed")
		outDir      = flag.String("out", "storage", "output directory")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed)) //nolint:gosec // synthetic data only

	players := make([]string, *playerCount)
	for i := range players {
		players[i] = fmt.Sprintf("elite_%03d", i+1)
	}

	games := make([]model.GameRecord, 0, *gameCount)
	for i := 0; i < *gameCount; i++ {
		games = append(games, playout(rng, players))
	}

	ex := features.NewSimExtractor()
	vectors, attributed, err := style.BuildReferenceVectors(context.Background(), ex, games)
	if err != nil {
		fmt.Fprintln(os.Stderr, "summarize reference games:", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o750); err != nil {
		fmt.Fprintln(os.Stderr, "create output directory:", err)
		os.Exit(1)
	}
	gamesPath := filepath.Join(*outDir, "reference_games.csv.gz")
	vectorsPath := filepath.Join(*outDir, "reference_style_vectors.csv")

	if err := writeGames(gamesPath, games); err != nil {
		fmt.Fprintln(os.Stderr, "write games:", err)
		os.Exit(1)
	}
	if err := writeVectors(vectorsPath, vectors); err != nil {
		fmt.Fprintln(os.Stderr, "write style vectors:", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d games (%d attributed rows, %d players) to %s\n",
		len(games), attributed, len(vectors), *outDir)
}

// playout generates one random legal game between two distinct players.
func playout(rng *rand.Rand, players []string) model.GameRecord {
	white := players[rng.Intn(len(players))]
	black := players[rng.Intn(len(players))]
	for black == white {
		black = players[rng.Intn(len(players))]
	}

	game := chess.NewGame()
	target := minPlies + rng.Intn(maxPlies-minPlies)
	var tokens []string
	for ply := 0; ply < target; ply++ {
		valid := game.ValidMoves()
		if len(valid) == 0 {
			break
		}
		move := valid[rng.Intn(len(valid))]
		if err := game.Move(move); err != nil {
			break
		}
		tokens = append(tokens, move.String())
		if game.Outcome() != chess.NoOutcome {
			break
		}
	}

	result := game.Outcome().String()
	if result == "*" {
		// Unfinished playout: assign a plausible result.
		switch rng.Intn(4) {
		case 0:
			result = model.ResultDraw
		case 1:
			result = model.ResultBlackWin
		default:
			result = model.ResultWhiteWin
		}
	}

	opening := sampleOpenings[rng.Intn(len(sampleOpenings))]
	return model.GameRecord{
		White:       white,
		Black:       black,
		Result:      result,
		ECO:         opening.eco,
		Opening:     opening.name,
		TimeControl: timeControls[rng.Intn(len(timeControls))],
		Moves:       tokens,
	}
}

func writeGames(path string, games []model.GameRecord) error {
	f, err := os.Create(path) //nolint:gosec // path comes from a flag
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz := gzip.NewWriter(f)
	w := csv.NewWriter(gz)

	if err := w.Write([]string{"white", "black", "result", "eco", "opening", "time_control", "moves"}); err != nil {
		return err
	}
	for _, g := range games {
		row := []string{g.White, g.Black, g.Result, g.ECO, g.Opening, g.TimeControl, strings.Join(g.Moves, " ")}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return gz.Close()
}

func writeVectors(path string, vectors []model.StyleVector) error {
	f, err := os.Create(path) //nolint:gosec // path comes from a flag
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := append([]string{"player"}, model.StyleFeatureNames()...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, v := range vectors {
		row := make([]string, 0, model.NumStyleFeatures+1)
		row = append(row, v.Player)
		for _, x := range v.Values() {
			row = append(row, strconv.FormatFloat(x, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
