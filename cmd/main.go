package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/shatranj-dev/shatranj/internal/adapters/http/api"
	"github.com/shatranj-dev/shatranj/internal/adapters/http/swagger"
	"github.com/shatranj-dev/shatranj/internal/adapters/lichess"
	app "github.com/shatranj-dev/shatranj/internal/app"
	"github.com/shatranj-dev/shatranj/internal/config"
	"github.com/shatranj-dev/shatranj/pkg/logger"
	"github.com/shatranj-dev/shatranj/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 120 * time.Second // recommendation runs fetch + replay many games
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	fetcher := lichess.NewClient(
		lichess.WithBaseURL(cfg.LichessURL),
		lichess.WithToken(cfg.LichessToken),
		lichess.WithCacheDir(cfg.CacheDir),
		lichess.WithTimeout(time.Duration(cfg.FetchTimeoutSec)*time.Second),
	)

	svc := app.New(
		app.WithLogger(log),
		app.WithReferencePaths(cfg.ReferenceGamesPath, cfg.StyleVectorsPath),
		app.WithClusterCount(cfg.ClusterCount),
		app.WithClusterSeed(cfg.ClusterSeed),
		app.WithNeighborCount(cfg.NeighborCount),
		app.WithTopOpenings(cfg.TopOpenings),
		app.WithMinGames(cfg.MinGames),
		app.WithFetcher(fetcher),
	)

	// Startup blocks on the reference load and model fit; it runs once
	// per process lifetime.
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater periodically refreshes system-level gauges.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMemoryUsage(m.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}
