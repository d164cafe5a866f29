package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 50*time.Millisecond, cfg.PageDelay())
	assert.Equal(t, []string{"M", "F"}, cfg.GenderList())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"teams_csv: data/teams.csv\n"+
			"page_delay_ms: 250\n"+
			"start_year: 2018\n"+
			"genders: f\n"+
			"cloudflare_bypass: true\n",
	), 0644))

	t.Setenv("SWIMSCRAPER_PAGE_DELAY_MS", "10")
	t.Setenv("SWIMSCRAPER_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/teams.csv", cfg.TeamsCSV)
	assert.Equal(t, 10, cfg.PageDelayMS)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2018, cfg.StartYear)
	assert.True(t, cfg.CloudflareBypass)
	assert.Equal(t, []string{"F"}, cfg.GenderList())
	assert.Equal(t, "https://www.swimcloud.com", cfg.BaseURL)
}

func TestLoadPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: out\n"), 0644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad base url", func(c *Config) { c.BaseURL = "not a url" }},
		{"zero timeout", func(c *Config) { c.TimeoutMS = 0 }},
		{"negative delay", func(c *Config) { c.PageDelayMS = -1 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
		{"end before start", func(c *Config) { c.EndYear = c.StartYear - 1 }},
		{"bad gender", func(c *Config) { c.Genders = "M,X" }},
		{"no genders", func(c *Config) { c.Genders = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}

	assert.NoError(t, Validate(New()))
}
