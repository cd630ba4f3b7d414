package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./tolerance.db", cfg.Database.Path)
	assert.Equal(t, "engagement-export*.json", cfg.Export.Pattern)
	assert.Equal(t, 40.0, cfg.Buckets.LowCutoff)
	assert.Equal(t, 70.0, cfg.Buckets.HighCutoff)
	assert.Equal(t, 10.0, cfg.Compare.Band)
	assert.Equal(t, 15, cfg.Platform.TweetIDDigits)
	assert.Equal(t, 40, cfg.Histogram.BarWidth)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tolerance.yaml")
	data := `
buckets:
  low_cutoff: 35
  high_cutoff: 75
platform:
  tweet_id_digits: 17
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 35.0, cfg.Buckets.LowCutoff)
	assert.Equal(t, 75.0, cfg.Buckets.HighCutoff)
	assert.Equal(t, 17, cfg.Platform.TweetIDDigits)
	// Untouched sections keep their defaults.
	assert.Equal(t, "./tolerance.db", cfg.Database.Path)
	assert.Equal(t, 10.0, cfg.Compare.Band)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("buckets: ["), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TOLERANCE_DB_PATH", "/tmp/other.db")
	t.Setenv("TOLERANCE_EXPORT_DIR", "/exports")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "/exports", cfg.Export.FallbackDir)
}
