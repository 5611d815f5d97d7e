package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerBoard/internal/collector"
)

var envKeys = []string{
	"TCBS_BASE_URL", "TCBS_TIMEOUT", "OFFLINE", "HTTPS_PROXY", "CACHE_TTL",
	"CRON_WARM", "CRON_PURGE", "SERVER_ADDR", "LOG_LEVEL", "WATCHLIST",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, collector.DefaultTCBSBaseURL, cfg.DataSource.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Len(t, cfg.Watchlist, 22)
	assert.False(t, cfg.DataSource.Offline)
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
data_source:
  base_url: http://localhost:9000/bars
  timeout: 5s
cache:
  ttl: 10m
schedule:
  warm_cron: "0 0 9 * * 1-5"
server:
  addr: 127.0.0.1:9090
watchlist: [tcb, " fpt "]
log:
  level: DEBUG
`)
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("SERVER_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/bars", cfg.DataSource.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "0 0 9 * * 1-5", cfg.Schedule.WarmCron)
	assert.Equal(t, "0 */10 * * * *", cfg.Schedule.PurgeCron)
	assert.Equal(t, []string{"TCB", "FPT"}, cfg.Watchlist)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvWatchlistAndOffline(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATCHLIST", "vnm,hpg")
	t.Setenv("OFFLINE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"VNM", "HPG"}, cfg.Watchlist)
	assert.True(t, cfg.DataSource.Offline)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "data_source: [oops"))
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("CACHE_TTL", "soon")
	_, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorContains(t, err, "CACHE_TTL")
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base := func(t *testing.T) *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad url", func(c *Config) { c.DataSource.BaseURL = "not a url" }, "BaseURL"},
		{"short timeout", func(c *Config) { c.DataSource.Timeout = time.Millisecond }, "Timeout"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "Level"},
		{"bad ticker", func(c *Config) { c.Watchlist = []string{"TC-B"} }, "Watchlist"},
		{"bad addr", func(c *Config) { c.Server.Addr = "8080" }, "Addr"},
		{"bad proxy", func(c *Config) { c.Proxy = "::" }, "Proxy"},
		{"five field cron", func(c *Config) { c.Schedule.WarmCron = "0 9 * * 1-5" }, "warm_cron"},
		{"bad purge cron", func(c *Config) { c.Schedule.PurgeCron = "every minute" }, "purge_cron"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOverride(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	cfg.Override("", false)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.DataSource.Offline)

	cfg.Override("DEBUG", true)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.DataSource.Offline)
	require.NoError(t, cfg.Validate())
}
