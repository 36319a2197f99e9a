// Package app provides the core recommendation service that implements
// the dependencies required by the HTTP API.
//
// The reference population (game table, style vectors, fitted scaler and
// centroids) is built once in Start and read-only afterwards. Requests
// keep every intermediate collection local, so concurrent requests need
// no locking around the model.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shatranj-dev/shatranj/internal/adapters/lichess"
	"github.com/shatranj-dev/shatranj/internal/adapters/repository"
	"github.com/shatranj-dev/shatranj/internal/domain/features"
	"github.com/shatranj-dev/shatranj/internal/domain/model"
	"github.com/shatranj-dev/shatranj/internal/domain/openings"
	"github.com/shatranj-dev/shatranj/internal/domain/style"
	"github.com/shatranj-dev/shatranj/pkg/logger"
	"github.com/shatranj-dev/shatranj/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultClusterCount  = 50
	defaultClusterSeed   = 42
	defaultNeighborCount = 5
	defaultTopOpenings   = 3
)

// Fetcher abstracts the upstream transcript collaborator.
type Fetcher interface {
	// FetchGames returns the raw PGN transcript for a username.
	FetchGames(ctx context.Context, username string) (string, error)
}

// Service wires the analytics pipeline behind a per-request entrypoint.
type Service struct {
	mu sync.RWMutex

	// Startup-built reference model
	store      *repository.Store
	spaceModel *style.Model

	// Pipeline components
	extractor features.Extractor
	engine    *openings.Engine
	fetcher   Fetcher

	// Configuration
	gamesPath     string
	vectorsPath   string
	clusterCount  int
	clusterSeed   int64
	neighborCount int
	topOpenings   int
	minGames      int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithReferencePaths sets the reference game table and style-vector
// table locations.
func WithReferencePaths(gamesPath, vectorsPath string) Option {
	return func(s *Service) {
		if gamesPath != "" {
			s.gamesPath = gamesPath
		}
		if vectorsPath != "" {
			s.vectorsPath = vectorsPath
		}
	}
}

// WithStore injects an already-built reference store, skipping the disk
// load in Start. Used by tests and by tooling.
func WithStore(store *repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithClusterCount sets the number of style clusters.
func WithClusterCount(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.clusterCount = k
		}
	}
}

// WithClusterSeed sets the clustering seed.
func WithClusterSeed(seed int64) Option {
	return func(s *Service) {
		s.clusterSeed = seed
	}
}

// WithNeighborCount sets how many stylistic peers are matched.
func WithNeighborCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.neighborCount = n
		}
	}
}

// WithTopOpenings sets how many openings are recommended per side.
func WithTopOpenings(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topOpenings = n
		}
	}
}

// WithMinGames discards opening groups with fewer games.
func WithMinGames(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minGames = n
		}
	}
}

// WithFetcher sets the upstream transcript collaborator.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		gamesPath:     "storage/reference_games.csv.gz",
		vectorsPath:   "storage/reference_style_vectors.csv",
		clusterCount:  defaultClusterCount,
		clusterSeed:   defaultClusterSeed,
		neighborCount: defaultNeighborCount,
		topOpenings:   defaultTopOpenings,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the reference dataset and fits the style-space model.
// Fitting blocks initialization; it runs exactly once per process
// lifetime. An empty reference population is fatal: the service cannot
// operate without reference data.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		store, err := repository.Load(ctx, s.gamesPath, s.vectorsPath)
		if err != nil {
			return fmt.Errorf("load reference dataset: %w", err)
		}
		s.store = store
	}

	fitStart := time.Now()
	spaceModel, err := style.Fit(s.store.StyleVectors(), s.clusterCount, s.clusterSeed)
	if err != nil {
		return fmt.Errorf("fit style-space model: %w", err)
	}
	s.spaceModel = spaceModel
	metrics.ObserveStartupFit(float64(time.Since(fitStart).Milliseconds()))

	s.extractor = features.NewSimExtractor()
	s.engine = openings.NewEngine(openings.WithMinGames(s.minGames))
	if s.fetcher == nil {
		s.fetcher = lichess.NewClient()
	}

	s.started = true
	metrics.UpdateReferenceGames(s.store.GameCount())
	metrics.UpdateReferencePlayers(s.store.PlayerCount())
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("referenceGames", s.store.GameCount()),
		logger.Int("referencePlayers", s.store.PlayerCount()),
		logger.Int("clusters", s.spaceModel.Clusters()),
	)
	return nil
}

// Stop marks the service as stopped. There are no background workers to
// unwind; the model is dropped with the process.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// Recommend runs the full per-request pipeline for a username: fetch,
// parse, optional time-control filter, then RecommendFromGames.
func (s *Service) Recommend(ctx context.Context, username, timeControl string) (model.RecommendResult, error) {
	if !s.isStarted() {
		return model.RecommendResult{}, ErrNotStarted
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return model.RecommendResult{}, ErrInvalidPlayer
	}

	fetchStart := time.Now()
	pgn, err := s.fetcher.FetchGames(ctx, username)
	metrics.RecordFetchLatency(float64(time.Since(fetchStart).Milliseconds()))
	if err != nil {
		metrics.RecordFetchError()
		return model.RecommendResult{}, fmt.Errorf("fetch %q: %w", username, err)
	}

	games, err := lichess.ParsePGN(pgn)
	if err != nil {
		return model.RecommendResult{}, fmt.Errorf("%w: %s", ErrNoGames, username)
	}
	if len(games) == 0 {
		return model.RecommendResult{}, fmt.Errorf("%w: %s", ErrNoGames, username)
	}
	metrics.RecordGamesParsed(len(games))

	if timeControl != "" {
		games = model.FilterTimeControl(games, timeControl)
		if len(games) == 0 {
			return model.RecommendResult{}, fmt.Errorf("%w: no %s games for %s", ErrNoGames, timeControl, username)
		}
	}

	result, err := s.RecommendFromGames(ctx, games)
	if err != nil {
		metrics.RecordRecommendationError()
		return model.RecommendResult{}, err
	}
	metrics.RecordRecommendation()

	s.logger.Info(ctx, "recommendation computed",
		logger.String("username", username),
		logger.String("timeControl", timeControl),
		logger.Int("games", len(games)),
		logger.Int("peers", len(result.TopPeers)),
	)
	return result, nil
}

// RecommendFromGames runs the core pipeline over an already-parsed game
// collection: feature extraction, style summary, peer matching, and
// per-side opening statistics over the full reference table.
func (s *Service) RecommendFromGames(ctx context.Context, games []model.GameRecord) (model.RecommendResult, error) {
	if !s.isStarted() {
		return model.RecommendResult{}, ErrNotStarted
	}
	if len(games) == 0 {
		return model.RecommendResult{}, style.ErrEmptyPopulation
	}

	recs := make([]model.FeatureRecord, len(games))
	for i, g := range games {
		recs[i] = s.extractor.Extract(ctx, g)
	}

	vec, err := style.Summarize("query", recs)
	if err != nil {
		return model.RecommendResult{}, err
	}

	neighbors := s.spaceModel.Neighbors(vec, s.neighborCount)
	peers := make([]string, len(neighbors))
	for i, n := range neighbors {
		peers[i] = n.Player
	}

	whiteStats, err := s.engine.Compute(s.store.Games(), peers, model.SideWhite)
	if err != nil {
		return model.RecommendResult{}, err
	}
	blackStats, err := s.engine.Compute(s.store.Games(), peers, model.SideBlack)
	if err != nil {
		return model.RecommendResult{}, err
	}

	white, black := openings.Recommend(whiteStats, blackStats, s.topOpenings)
	return model.RecommendResult{
		TopPeers: peers,
		White:    white,
		Black:    black,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"cluster_count":  s.clusterCount,
		"neighbor_count": s.neighborCount,
		"top_openings":   s.topOpenings,
		"min_games":      s.minGames,
	}
	if s.started {
		stats["reference_games"] = s.store.GameCount()
		stats["reference_players"] = s.store.PlayerCount()
		stats["clusters_fitted"] = s.spaceModel.Clusters()
	}
	return stats
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
