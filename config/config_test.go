package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, ProviderStooq, cfg.Prices.Provider)
	assert.Equal(t, 15*time.Second, cfg.Prices.Timeout.Duration)
	assert.Equal(t, 12*time.Hour, cfg.Store.CacheTTL.Duration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "alpha vantage with key",
			mutate:  func(c *Config) { c.Prices.Provider = "alpha_vantage"; c.Prices.APIKey = "k" },
			wantErr: false,
		},
		{
			name:    "alpha vantage without key",
			mutate:  func(c *Config) { c.Prices.Provider = ProviderAlphaVantage },
			wantErr: true,
			errMsg:  "prices.api_key is required",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Prices.Provider = "yahoo" },
			wantErr: true,
			errMsg:  "prices.provider must be",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Prices.Timeout = Duration{} },
			wantErr: true,
			errMsg:  "prices.timeout must be positive",
		},
		{
			name:    "negative history limit",
			mutate:  func(c *Config) { c.Prices.HistoryLimit = -1 },
			wantErr: true,
			errMsg:  "prices.history_limit",
		},
		{
			name:    "negative cache ttl",
			mutate:  func(c *Config) { c.Store.CacheTTL = Duration{-time.Second} },
			wantErr: true,
			errMsg:  "store.cache_ttl",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format",
		},
		{
			name:    "no workers",
			mutate:  func(c *Config) { c.Watch.Workers = 0 },
			wantErr: true,
			errMsg:  "watch.workers",
		},
		{
			name:    "bad report format",
			mutate:  func(c *Config) { c.Watch.Format = "pdf" },
			wantErr: true,
			errMsg:  "watch.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Watch.Symbols = []string{"AAPL", "MSFT"}
			cfg.Prices.Timeout = Duration{7 * time.Second}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watch:\n  symbols: [IBM]\nstore:\n  cache_ttl: 1h\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"IBM"}, cfg.Watch.Symbols)
	assert.Equal(t, time.Hour, cfg.Store.CacheTTL.Duration)
	assert.Equal(t, ProviderStooq, cfg.Prices.Provider)
	assert.Equal(t, 4, cfg.Watch.Workers)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prices:\n  timeout: soon\n"), 0o644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "bad duration")
	assert.NotContains(t, err.Error(), "invalid character")

	jsonPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"prices": {"timeout": "soon"}}`), 0o644))
	_, err = LoadFromFile(jsonPath)
	assert.ErrorContains(t, err, "bad duration")

	truncated := filepath.Join(t.TempDir(), "cut.json")
	require.NoError(t, os.WriteFile(truncated, []byte(`{"prices": {`), 0o644))
	_, err = LoadFromFile(truncated)
	assert.ErrorContains(t, err, "parse config")
}

func TestLoadDefersProviderChecks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "av.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prices:\n  provider: alphavantage\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateLocal())
	assert.ErrorContains(t, cfg.Validate(), "prices.api_key is required")

	cfg.ApplyEnv(func(k string) string {
		if k == "ALPHA_VANTAGE_KEY" {
			return "k"
		}
		return ""
	})
	assert.NoError(t, cfg.Validate())

	cfg.Watch.Workers = 0
	assert.Error(t, cfg.ValidateLocal())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PRICE_PROVIDER":       " alpha_vantage ",
		"ALPHA_VANTAGE_KEY":    "secret",
		"STOCKBRIEF_DB":        "/tmp/x.sqlite",
		"STOCKBRIEF_LOG_LEVEL": "debug",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "alpha_vantage", cfg.Prices.Provider)
	assert.Equal(t, ProviderAlphaVantage, cfg.Prices.NormalizedProvider())
	assert.Equal(t, "secret", cfg.Prices.APIKey)
	assert.Equal(t, "/tmp/x.sqlite", cfg.Store.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())

	untouched := Default()
	untouched.ApplyEnv(func(string) string { return "" })
	assert.Equal(t, Default(), untouched)
}
