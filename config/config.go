package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Price provider names accepted in Prices.Provider.
const (
	ProviderStooq        = "stooq"
	ProviderAlphaVantage = "alphavantage"
)

// Config is the complete stockbrief configuration. It is built explicitly
// (Default, LoadFromFile, ApplyEnv) and handed to whatever needs it; nothing
// reads the environment at import time.
type Config struct {
	Prices PricesConfig `json:"prices" yaml:"prices"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Log    LogConfig    `json:"log" yaml:"log"`
	Watch  WatchConfig  `json:"watch" yaml:"watch"`
}

// PricesConfig selects and configures the daily price provider.
type PricesConfig struct {
	Provider     string   `json:"provider" yaml:"provider"` // "stooq" or "alphavantage"
	APIKey       string   `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	StooqURL     string   `json:"stooq_url,omitempty" yaml:"stooq_url,omitempty"`
	AlphaURL     string   `json:"alpha_url,omitempty" yaml:"alpha_url,omitempty"`
	OutputSize   string   `json:"output_size,omitempty" yaml:"output_size,omitempty"` // "compact" or "full"
	Timeout      Duration `json:"timeout" yaml:"timeout"`
	HistoryLimit int      `json:"history_limit" yaml:"history_limit"`
}

// StoreConfig configures the SQLite price cache and summary journal.
type StoreConfig struct {
	DBPath   string   `json:"db_path" yaml:"db_path"`
	CacheTTL Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug|info|warn|error
	Format string `json:"format" yaml:"format"` // text|json
}

// WatchConfig drives the scheduled watchlist run.
type WatchConfig struct {
	Symbols   []string `json:"symbols" yaml:"symbols"`
	Schedule  string   `json:"schedule" yaml:"schedule"` // cron spec, seconds field first
	Workers   int      `json:"workers" yaml:"workers"`
	Format    string   `json:"format" yaml:"format"` // md|org|json|yaml
	OutputDir string   `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
}

// Duration is a time.Duration written as a string ("15s", "12h") in config
// files.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("bad duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

// LoadFromFile loads configuration from a file (YAML or JSON). Values missing
// from the file keep their Default. The price provider is not validated, so an
// API key may still come from the environment.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if yamlErr := yaml.Unmarshal(data, cfg); yamlErr != nil {
		cfg = Default()
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			// report the error of the format the file looks like
			if looksLikeJSON(path, data) {
				return nil, fmt.Errorf("parse config: %w", jsonErr)
			}
			return nil, fmt.Errorf("parse config: %w", yamlErr)
		}
	}

	// provider settings are checked by the caller once ApplyEnv has run
	if err := cfg.ValidateLocal(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func looksLikeJSON(path string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(string(data)), "{")
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON
// otherwise).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays environment settings on c. getenv is usually os.Getenv.
//
//	PRICE_PROVIDER        prices.provider
//	ALPHA_VANTAGE_KEY     prices.api_key
//	STOCKBRIEF_DB         store.db_path
//	STOCKBRIEF_LOG_LEVEL  log.level
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("PRICE_PROVIDER")); v != "" {
		c.Prices.Provider = v
	}
	if v := getenv("ALPHA_VANTAGE_KEY"); v != "" {
		c.Prices.APIKey = v
	}
	if v := getenv("STOCKBRIEF_DB"); v != "" {
		c.Store.DBPath = v
	}
	if v := getenv("STOCKBRIEF_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// NormalizedProvider returns the provider name lower-cased with the
// "alpha_vantage" spelling folded into "alphavantage".
func (p PricesConfig) NormalizedProvider() string {
	name := strings.ToLower(strings.TrimSpace(p.Provider))
	if name == "alpha_vantage" {
		return ProviderAlphaVantage
	}
	return name
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Prices.Validate(); err != nil {
		return err
	}
	return c.ValidateLocal()
}

// Validate checks the provider selection and its settings.
func (p PricesConfig) Validate() error {
	switch p.NormalizedProvider() {
	case ProviderStooq:
	case ProviderAlphaVantage:
		if p.APIKey == "" {
			return fmt.Errorf("prices.api_key is required for provider %q", p.Provider)
		}
	default:
		return fmt.Errorf("prices.provider must be 'stooq' or 'alphavantage', got %q", p.Provider)
	}
	if p.Timeout.Duration <= 0 {
		return fmt.Errorf("prices.timeout must be positive")
	}
	return nil
}

// ValidateLocal checks everything except the price provider, for commands
// that never fetch.
func (c *Config) ValidateLocal() error {
	if c.Prices.HistoryLimit < 0 {
		return fmt.Errorf("prices.history_limit must not be negative")
	}
	if c.Store.CacheTTL.Duration < 0 {
		return fmt.Errorf("store.cache_ttl must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	if c.Watch.Workers < 1 {
		return fmt.Errorf("watch.workers must be at least 1")
	}
	switch c.Watch.Format {
	case "md", "org", "json", "yaml":
	default:
		return fmt.Errorf("watch.format must be md, org, json or yaml")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Prices: PricesConfig{
			Provider:     ProviderStooq,
			StooqURL:     "https://stooq.com",
			AlphaURL:     "https://www.alphavantage.co",
			OutputSize:   "compact",
			Timeout:      Duration{15 * time.Second},
			HistoryLimit: 500,
		},
		Store: StoreConfig{
			DBPath:   "./stockbrief.sqlite",
			CacheTTL: Duration{12 * time.Hour},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			Schedule: "0 30 17 * * 1-5",
			Workers:  4,
			Format:   "md",
		},
	}
}
