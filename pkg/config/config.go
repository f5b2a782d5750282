// Package config loads the service configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	env "github.com/netflix/go-env"
)

// Config carries the startup paths and tunables. The search core only reads
// the resulting values; it never consults the environment itself.
type Config struct {
	StorageDataPath   string `env:"JOTOBA_STORAGE_DATA,default=./resources/storage_data"`
	IndexSourcePath   string `env:"JOTOBA_INDEXES,default=./resources/indexes"`
	SuggestionSources string `env:"JOTOBA_SUGGESTIONS,default=./resources/suggestions"`
	UnidicDict        string `env:"JOTOBA_UNIDIC_DICT,default=uni"`
	ListenAddress     string `env:"JOTOBA_LISTEN,default=127.0.0.1:8080"`

	// ReportQueriesAfter is the slow-query log threshold in seconds.
	ReportQueriesAfter int `env:"JOTOBA_REPORT_QUERIES_AFTER,default=4"`

	// Retrieval thresholds; empirical defaults, kept configurable.
	NativeThreshold   float64 `env:"JOTOBA_NATIVE_THRESHOLD,default=0.04"`
	NameThreshold     float64 `env:"JOTOBA_NAME_THRESHOLD,default=0.05"`
	ForeignThreshold  float64 `env:"JOTOBA_FOREIGN_THRESHOLD,default=0.4"`
	RomajiFallbackMax int     `env:"JOTOBA_ROMAJI_FALLBACK_MAX,default=50"`

	Concurrency int `env:"JOTOBA_CONCURRENCY,default=4"`
}

// Load reads the configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Concurrency > 32 {
		cfg.Concurrency = 32
	}
	if cfg.NativeThreshold < 0 || cfg.NativeThreshold > 1 {
		return fmt.Errorf("native threshold %f out of range", cfg.NativeThreshold)
	}
	if cfg.ForeignThreshold < 0 || cfg.ForeignThreshold > 1 {
		return fmt.Errorf("foreign threshold %f out of range", cfg.ForeignThreshold)
	}
	if cfg.NameThreshold < 0 || cfg.NameThreshold > 1 {
		return fmt.Errorf("name threshold %f out of range", cfg.NameThreshold)
	}
	if cfg.RomajiFallbackMax < 0 {
		cfg.RomajiFallbackMax = 0
	}
	if cfg.UnidicDict != "uni" && cfg.UnidicDict != "ipa" {
		return fmt.Errorf("unknown morphology dictionary %q", cfg.UnidicDict)
	}
	return nil
}

// DatabasePath returns the SQLite file inside the storage data directory.
func (c *Config) DatabasePath() string {
	return c.StorageDataPath + "/jotoba.db"
}
