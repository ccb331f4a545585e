// Package config holds the run configuration for the harvester CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matsen/scholarvest/internal/roster"
	"github.com/matsen/scholarvest/internal/scholar"
)

// Config is the full run configuration. Zero values fall back to the
// defaults from Default.
type Config struct {
	Department string        `yaml:"department"`
	Roster     RosterConfig  `yaml:"roster"`
	Fetch      FetchConfig   `yaml:"fetch"`
	Crawl      CrawlConfig   `yaml:"crawl"`
	Render     RenderConfig  `yaml:"render"`
	Horizon    HorizonConfig `yaml:"horizon"`
	Output     OutputConfig  `yaml:"output"`
	Logging    LoggingConfig `yaml:"logging"`
}

// RosterConfig locates the faculty roster CSV and its columns.
type RosterConfig struct {
	Path       string `yaml:"path"`
	NameColumn string `yaml:"name_column"`
	URLColumn  string `yaml:"url_column"`
}

// FetchConfig controls the static page fetcher and its cache.
type FetchConfig struct {
	BaseURL        string  `yaml:"base_url"`
	UserAgent      string  `yaml:"user_agent"`
	DelaySeconds   float64 `yaml:"delay_seconds"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	CacheDir       string  `yaml:"cache_dir"`
	Force          bool    `yaml:"force"`
}

// CrawlConfig bounds the listing traversal. Zero caps mean no cap.
type CrawlConfig struct {
	PageSize        int `yaml:"page_size"`
	MaxListingPages int `yaml:"max_listing_pages"`
	MaxAuthors      int `yaml:"max_authors"`
	MaxPublications int `yaml:"max_publications"`
}

// RenderConfig controls the headless-browser series fallback.
type RenderConfig struct {
	Enabled        bool `yaml:"enabled"`
	TimeoutSeconds int  `yaml:"timeout_seconds"`
}

// HorizonConfig is the publication year range kept in exports.
type HorizonConfig struct {
	MinYear int `yaml:"min_year"`
	MaxYear int `yaml:"max_year"`
}

// OutputConfig names the run's artifacts.
type OutputConfig struct {
	DatabasePath string `yaml:"database_path"`
	CSVPath      string `yaml:"csv_path"`
	YearlyDir    string `yaml:"yearly_dir"`
}

// LoggingConfig controls log verbosity and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Department: "CS",
		Roster: RosterConfig{
			NameColumn: roster.DefaultNameColumn,
			URLColumn:  roster.DefaultURLColumn,
		},
		Fetch: FetchConfig{
			BaseURL:        scholar.BaseURL,
			DelaySeconds:   3.0,
			TimeoutSeconds: 30,
			CacheDir:       "cache_scholar",
		},
		Crawl: CrawlConfig{
			PageSize:        100,
			MaxListingPages: 500,
		},
		Render: RenderConfig{
			TimeoutSeconds: 45,
		},
		Horizon: HorizonConfig{MinYear: 2015, MaxYear: 2026},
		Output: OutputConfig{
			DatabasePath: "scholarvest.db",
			CSVPath:      "dept_publications.csv",
			YearlyDir:    "yearly_docs",
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load builds the effective configuration: defaults, then the optional
// YAML file, then environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SCHOLARVEST_CACHE_DIR"); v != "" {
		c.Fetch.CacheDir = v
	}
	if v := os.Getenv("SCHOLARVEST_USER_AGENT"); v != "" {
		c.Fetch.UserAgent = v
	}
	if v := os.Getenv("SCHOLARVEST_DELAY_SECONDS"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil {
			c.Fetch.DelaySeconds = d
		}
	}
	if v := os.Getenv("SCHOLARVEST_DB"); v != "" {
		c.Output.DatabasePath = v
	}
	if v := os.Getenv("SCHOLARVEST_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks bounds that would otherwise fail deep inside a run.
func (c Config) Validate() error {
	if c.Crawl.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.Crawl.PageSize)
	}
	if c.Crawl.MaxListingPages <= 0 {
		return fmt.Errorf("max_listing_pages must be positive, got %d", c.Crawl.MaxListingPages)
	}
	if c.Horizon.MinYear > c.Horizon.MaxYear {
		return fmt.Errorf("horizon min_year %d exceeds max_year %d", c.Horizon.MinYear, c.Horizon.MaxYear)
	}
	if c.Fetch.DelaySeconds < 0 {
		return fmt.Errorf("delay_seconds must not be negative, got %v", c.Fetch.DelaySeconds)
	}
	if c.Fetch.CacheDir == "" {
		return fmt.Errorf("cache_dir must not be empty")
	}
	if c.Output.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	return nil
}

// Range returns the configured year range as a scholar horizon.
func (h HorizonConfig) Range() scholar.Horizon {
	return scholar.Horizon{Min: h.MinYear, Max: h.MaxYear}
}

// Delay returns the configured inter-request delay.
func (f FetchConfig) Delay() time.Duration {
	return time.Duration(f.DelaySeconds * float64(time.Second))
}

// Timeout returns the per-request HTTP timeout.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Timeout returns the per-page render timeout.
func (r RenderConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}
