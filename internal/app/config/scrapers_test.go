package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScrapersConfig(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		raw := []byte(`{"scrapers":[
			{"id":"hmc","kind":"html-catalog","enabled":true,"options":{"catalog_url":"http://example.test"}},
			{"id":"pomona","kind":"html-catalog","enabled":false}
		]}`)

		cfg, err := ParseScrapersConfig(raw)
		require.NoError(t, err)
		assert.Len(t, cfg.Scrapers, 2)
		assert.Equal(t, []string{"hmc"}, cfg.EnabledIDs())

		hmc, ok := cfg.Find("hmc")
		require.True(t, ok)
		assert.Equal(t, "http://example.test", hmc.Options["catalog_url"])

		_, ok = cfg.Find("missing")
		assert.False(t, ok)
	})

	t.Run("Missing Kind", func(t *testing.T) {
		_, err := ParseScrapersConfig([]byte(`{"scrapers":[{"id":"hmc"}]}`))
		assert.Error(t, err)
	})

	t.Run("Duplicate ID", func(t *testing.T) {
		_, err := ParseScrapersConfig([]byte(`{"scrapers":[{"id":"a","kind":"x"},{"id":"a","kind":"x"}]}`))
		assert.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseScrapersConfig([]byte(`{"scrapers":`))
		assert.Error(t, err)
	})
}

func TestLoadScrapersConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrapers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scrapers":[{"id":"hmc","kind":"html-catalog","enabled":true}]}`), 0o600))

	cfg, err := LoadScrapersConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"hmc"}, cfg.EnabledIDs())

	_, err = LoadScrapersConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNewInternalConfig(t *testing.T) {
	t.Setenv("HARVEST_WORKERS", "8")
	t.Setenv("HARVEST_DEADLINE", "90s")
	t.Setenv("CHECKPOINT_BACKEND", "file")

	cfg := NewInternalConfig()
	assert.Equal(t, 8, cfg.Harvest.Workers)
	assert.Equal(t, "1m30s", cfg.Harvest.Deadline.String())
	assert.Equal(t, "file", cfg.Checkpoint.Backend)
	assert.Equal(t, "@hourly", cfg.Harvest.CronSpec)
}
