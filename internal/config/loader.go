package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SHATRANJ_CONFIG is set
//  3. env (prefix SHATRANJ_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SHATRANJ_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SHATRANJ_ADDR, SHATRANJ_CLUSTER_COUNT, ...
	// mapped to the flat koanf keys on the struct.
	envProvider := env.Provider("SHATRANJ_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "shatranj_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ReferenceGamesPath == "":
		return fmt.Errorf("%w: reference_games_path must not be empty", ErrInvalidConfig)
	case c.StyleVectorsPath == "":
		return fmt.Errorf("%w: style_vectors_path must not be empty", ErrInvalidConfig)
	case c.ClusterCount <= 0:
		return fmt.Errorf("%w: cluster_count must be positive", ErrInvalidConfig)
	case c.NeighborCount <= 0:
		return fmt.Errorf("%w: neighbor_count must be positive", ErrInvalidConfig)
	case c.TopOpenings <= 0:
		return fmt.Errorf("%w: top_openings must be positive", ErrInvalidConfig)
	case c.FetchTimeoutSec <= 0:
		return fmt.Errorf("%w: fetch_timeout_sec must be positive", ErrInvalidConfig)
	}
	return nil
}
