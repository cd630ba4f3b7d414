package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gtech/tolerance/pkg/platform"
	"github.com/gtech/tolerance/pkg/stats"
)

// Config is the root configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Export    ExportConfig    `yaml:"export"`
	Buckets   BucketConfig    `yaml:"buckets"`
	Compare   CompareConfig   `yaml:"compare"`
	Platform  PlatformConfig  `yaml:"platform"`
	Histogram HistogramConfig `yaml:"histogram"`
}

// DatabaseConfig configures the SQLite calibration history store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig configures export file discovery when no path is given.
type ExportConfig struct {
	Pattern     string `yaml:"pattern"`
	FallbackDir string `yaml:"fallback_dir"`
}

// BucketConfig holds the engagement tier cutoffs the report evaluates.
// These mirror the posting pipeline's deployed thresholds.
type BucketConfig struct {
	LowCutoff  float64 `yaml:"low_cutoff"`  // scores below this are "low"
	HighCutoff float64 `yaml:"high_cutoff"` // scores at or above this are "high"
}

// CompareConfig configures the heuristic-vs-API comparison.
type CompareConfig struct {
	Band float64 `yaml:"band"` // half-width of the "within" band
}

// PlatformConfig configures platform classification heuristics.
type PlatformConfig struct {
	TweetIDDigits int `yaml:"tweet_id_digits"` // postId digit count above which it reads as a tweet ID
}

// HistogramConfig configures histogram rendering.
type HistogramConfig struct {
	BarWidth int `yaml:"bar_width"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./tolerance.db"},
		Export: ExportConfig{
			Pattern: "engagement-export*.json",
		},
		Buckets: BucketConfig{
			LowCutoff:  stats.DefaultLowCutoff,
			HighCutoff: stats.DefaultHighCutoff,
		},
		Compare: CompareConfig{Band: stats.DefaultDiffBand},
		Platform: PlatformConfig{
			TweetIDDigits: platform.DefaultTweetIDDigits,
		},
		Histogram: HistogramConfig{BarWidth: stats.DefaultBarWidth},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TOLERANCE_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TOLERANCE_EXPORT_DIR"); v != "" {
		cfg.Export.FallbackDir = v
	}
}
