// Package config defines service configuration structures and loading.
//
// Conventions follow the rest of the codebase: defaults first, then an
// optional YAML file, then SHATRANJ_* environment variables.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// ReferenceGamesPath locates the reference game table (CSV,
	// optionally gzipped).
	ReferenceGamesPath string `koanf:"reference_games_path"`

	// StyleVectorsPath locates the reference style-vector table (CSV).
	StyleVectorsPath string `koanf:"style_vectors_path"`

	// ClusterCount sets k for startup style clustering.
	ClusterCount int `koanf:"cluster_count"`

	// ClusterSeed makes the clustering deterministic.
	ClusterSeed int64 `koanf:"cluster_seed"`

	// NeighborCount sets how many stylistic peers are matched.
	NeighborCount int `koanf:"neighbor_count"`

	// TopOpenings sets how many openings are recommended per side.
	TopOpenings int `koanf:"top_openings"`

	// MinGames discards opening groups with fewer reference games.
	MinGames int `koanf:"min_games"`

	// LichessToken is the access credential for the transcript service.
	LichessToken string `koanf:"lichess_token"`

	// LichessURL overrides the transcript service base URL.
	LichessURL string `koanf:"lichess_url"`

	// CacheDir is where fetched transcripts are archived. Empty disables
	// archiving.
	CacheDir string `koanf:"cache_dir"`

	// FetchTimeoutSec bounds the single upstream fetch. No retries.
	FetchTimeoutSec int `koanf:"fetch_timeout_sec"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9090",
		ReferenceGamesPath: "storage/reference_games.csv.gz",
		StyleVectorsPath:   "storage/reference_style_vectors.csv",
		ClusterCount:       50,
		ClusterSeed:        42,
		NeighborCount:      5,
		TopOpenings:        3,
		MinGames:           0,
		LichessURL:         "https://lichess.org",
		CacheDir:           "cache/user_cache",
		FetchTimeoutSec:    60,
	}
}
