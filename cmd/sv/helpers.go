package main

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/matsen/scholarvest/internal/config"
	"github.com/matsen/scholarvest/internal/dataset"
	"github.com/matsen/scholarvest/internal/fetch"
	"github.com/matsen/scholarvest/internal/harvest"
	"github.com/matsen/scholarvest/internal/logging"
	"github.com/matsen/scholarvest/internal/render"
)

// loadConfig resolves the effective configuration from defaults, the
// optional --config file, and environment overrides. It exits on
// invalid configuration.
func loadConfig() config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// newLogger builds the run logger from the logging config.
func newLogger(cfg config.Config) zerolog.Logger {
	return logging.New(cfg.Logging.Level, cfg.Logging.Format)
}

// newHarvester wires the fetch client, page cache, and optional
// rendered-series extractor into a Harvester.
func newHarvester(cfg config.Config, log zerolog.Logger) *harvest.Harvester {
	client := fetch.NewClient(
		fetch.WithHTTPClient(&http.Client{Timeout: cfg.Fetch.Timeout()}),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithDelay(cfg.Fetch.Delay()),
	)
	cache := fetch.NewStore(cfg.Fetch.CacheDir)

	var renderer harvest.SeriesRenderer
	if cfg.Render.Enabled {
		renderer = render.NewExtractor(cfg.Render.Timeout())
	}

	hcfg := harvest.Config{
		Department:      cfg.Department,
		BaseURL:         cfg.Fetch.BaseURL,
		PageSize:        cfg.Crawl.PageSize,
		MaxListingPages: cfg.Crawl.MaxListingPages,
		MaxAuthors:      cfg.Crawl.MaxAuthors,
		MaxPublications: cfg.Crawl.MaxPublications,
		Horizon:         cfg.Horizon.Range(),
		Force:           cfg.Fetch.Force,
	}
	return harvest.New(hcfg, client, cache, renderer, log)
}

// openStore opens the SQLite dataset at the configured path. It exits
// when the database cannot be opened.
func openStore(path string) *dataset.Store {
	store, err := dataset.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening dataset %s: %v", path, err)
	}
	return store
}
