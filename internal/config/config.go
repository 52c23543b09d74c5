package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8090"`

	// Catalog source
	CatalogPath  string `env:"CATALOG_PATH"`
	ChapterLevel int    `env:"CHAPTER_LEVEL" envDefault:"0"`

	// Hot reload
	Watch         bool          `env:"WATCH" envDefault:"true"`
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE" envDefault:"250ms"`

	// Auth; empty disables it.
	APIKey string `env:"PATTERNCAT_API_KEY"`

	// Load latency window
	StatsWindow time.Duration `env:"STATS_WINDOW" envDefault:"1h"`
}

// Load reads the configuration from the environment, after applying a .env
// file from the working directory if one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 250 * time.Millisecond
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = time.Hour
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.ChapterLevel < 0 || c.ChapterLevel > 5 {
		return fmt.Errorf("CHAPTER_LEVEL must be between 0 and 5, got %d", c.ChapterLevel)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	return nil
}
