package repository

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shatranj-dev/shatranj/internal/domain/model"
)

// Column layout of the reference game table.
var gameColumns = []string{"white", "black", "result", "eco", "opening", "time_control", "moves"}

// Option applies a configuration option to loading.
type Option func(*loader)

// WithMaxGames caps how many reference games are read. Zero means no cap.
func WithMaxGames(n int) Option {
	return func(l *loader) {
		if n > 0 {
			l.maxGames = n
		}
	}
}

type loader struct {
	maxGames int
}

// Load reads the reference game table and the reference style-vector
// table from disk. Files ending in .gz are decompressed transparently.
func Load(ctx context.Context, gamesPath, vectorsPath string, opts ...Option) (*Store, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	games, err := l.loadGames(ctx, gamesPath)
	if err != nil {
		return nil, err
	}
	vectors, err := l.loadStyleVectors(ctx, vectorsPath)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 || len(vectors) == 0 {
		return nil, ErrNoReference
	}
	return NewStore(games, vectors), nil
}

// open returns a reader for path, gunzipping when the name asks for it.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from service config
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	return &gzipReadCloser{gz: gz, file: f}, nil
}

type gzipReadCloser struct {
	gz   *gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return gzErr
}

func (l *loader) loadGames(ctx context.Context, path string) ([]model.GameRecord, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(gameColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	for i, want := range gameColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i, header[i], want)
		}
	}

	var games []model.GameRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRow, err)
		}
		games = append(games, model.GameRecord{
			White:       row[0],
			Black:       row[1],
			Result:      row[2],
			ECO:         row[3],
			Opening:     row[4],
			TimeControl: row[5],
			Moves:       strings.Fields(row[6]),
		})
		if l.maxGames > 0 && len(games) >= l.maxGames {
			break
		}
	}
	return games, nil
}

func (l *loader) loadStyleVectors(ctx context.Context, path string) ([]model.StyleVector, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	cr := csv.NewReader(r)
	featureNames := model.StyleFeatureNames()
	cr.FieldsPerRecord = 1 + len(featureNames)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if !strings.EqualFold(strings.TrimSpace(header[0]), "player") {
		return nil, fmt.Errorf("%w: first column is %q, want %q", ErrBadHeader, header[0], "player")
	}
	for i, want := range featureNames {
		if !strings.EqualFold(strings.TrimSpace(header[i+1]), want) {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, header[i+1], want)
		}
	}

	var vectors []model.StyleVector
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRow, err)
		}
		vals := make([]float64, len(featureNames))
		for i := range featureNames {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: player %q column %q: %w", ErrBadRow, row[0], featureNames[i], err)
			}
			vals[i] = v
		}
		vectors = append(vectors, model.StyleVectorFromValues(row[0], vals))
	}
	return vectors, nil
}
