package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration file.
type Config struct {
	APIBase        string           `toml:"api_base"`
	Timeout        Duration         `toml:"timeout"`
	PageSize       int              `toml:"page_size"`
	Suggestions    int              `toml:"suggestions"`
	HistoryEnabled bool             `toml:"history_enabled"`
	Thumbnails     bool             `toml:"thumbnails"`
	Enrichment     EnrichmentConfig `toml:"enrichment"`
}

// EnrichmentConfig tunes ingredient-search detail lookups.
type EnrichmentConfig struct {
	Limit               int  `toml:"limit"`
	EmptyOnTotalFailure bool `toml:"empty_on_total_failure"`
}

// Duration is a time.Duration that reads and writes as a string ("10s").
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		APIBase:        "https://www.thecocktaildb.com/api/json/v1/1",
		Timeout:        Duration{10 * time.Second},
		PageSize:       6,
		Suggestions:    4,
		HistoryEnabled: true,
		Thumbnails:     true,
		Enrichment: EnrichmentConfig{
			Limit:               10,
			EmptyOnTotalFailure: true,
		},
	}
}

// Load reads the configuration at path, layering it over the defaults.
// A missing file yields the defaults and a nil error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	def := Default()
	if c.APIBase == "" {
		c.APIBase = def.APIBase
	}
	if c.Timeout.Duration < 0 {
		c.Timeout = def.Timeout
	}
	if c.PageSize < 1 {
		c.PageSize = def.PageSize
	}
	if c.Suggestions < 0 {
		c.Suggestions = 0
	}
	if c.Enrichment.Limit < 1 || c.Enrichment.Limit > 10 {
		c.Enrichment.Limit = def.Enrichment.Limit
	}
}
