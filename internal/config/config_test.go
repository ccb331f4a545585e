package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Crawl.PageSize != 100 {
		t.Errorf("expected page size 100, got %d", cfg.Crawl.PageSize)
	}
	if cfg.Horizon.MinYear != 2015 || cfg.Horizon.MaxYear != 2026 {
		t.Errorf("unexpected default horizon: %+v", cfg.Horizon)
	}
	if cfg.Fetch.DelaySeconds != 3.0 {
		t.Errorf("expected 3s default delay, got %v", cfg.Fetch.DelaySeconds)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
department: MATH
fetch:
  delay_seconds: 0.5
  cache_dir: /tmp/scholar-cache
horizon:
  min_year: 2018
  max_year: 2024
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Department != "MATH" {
		t.Errorf("expected department MATH, got %q", cfg.Department)
	}
	if cfg.Fetch.DelaySeconds != 0.5 {
		t.Errorf("expected delay 0.5, got %v", cfg.Fetch.DelaySeconds)
	}
	if cfg.Horizon.MinYear != 2018 || cfg.Horizon.MaxYear != 2024 {
		t.Errorf("unexpected horizon: %+v", cfg.Horizon)
	}

	// Untouched keys keep their defaults.
	if cfg.Crawl.PageSize != 100 {
		t.Errorf("expected default page size to survive, got %d", cfg.Crawl.PageSize)
	}
	if cfg.Roster.NameColumn != "Faculty Name" {
		t.Errorf("expected default name column, got %q", cfg.Roster.NameColumn)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
fetch:
  cache_dir: from-file
`)
	t.Setenv("SCHOLARVEST_CACHE_DIR", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Fetch.CacheDir != "from-env" {
		t.Errorf("expected env override, got %q", cfg.Fetch.CacheDir)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Department != "CS" {
		t.Errorf("expected default department, got %q", cfg.Department)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero page size", func(c *Config) { c.Crawl.PageSize = 0 }, "page_size"},
		{"zero listing bound", func(c *Config) { c.Crawl.MaxListingPages = 0 }, "max_listing_pages"},
		{"inverted horizon", func(c *Config) { c.Horizon.MinYear = 2030 }, "horizon"},
		{"negative delay", func(c *Config) { c.Fetch.DelaySeconds = -1 }, "delay_seconds"},
		{"empty cache dir", func(c *Config) { c.Fetch.CacheDir = "" }, "cache_dir"},
		{"empty database path", func(c *Config) { c.Output.DatabasePath = "" }, "database_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestFetchConfig_Delay(t *testing.T) {
	f := FetchConfig{DelaySeconds: 1.5}
	if got := f.Delay(); got != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", got)
	}
}

func TestHorizonConfig_Range(t *testing.T) {
	h := HorizonConfig{MinYear: 2016, MaxYear: 2022}
	r := h.Range()
	if r.Min != 2016 || r.Max != 2022 {
		t.Errorf("unexpected range: %+v", r)
	}
}
