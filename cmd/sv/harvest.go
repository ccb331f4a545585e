package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matsen/scholarvest/internal/dataset"
	"github.com/matsen/scholarvest/internal/fetch"
	"github.com/matsen/scholarvest/internal/roster"
)

var (
	harvestRoster     string
	harvestForce      bool
	harvestMaxAuthors int
	harvestNoCSV      bool
)

func init() {
	harvestCmd.Flags().StringVar(&harvestRoster, "roster", "", "Roster CSV path (overrides config)")
	harvestCmd.Flags().BoolVar(&harvestForce, "force", false, "Refetch pages even when cached")
	harvestCmd.Flags().IntVar(&harvestMaxAuthors, "max-authors", 0, "Stop after this many authors (0 = all)")
	harvestCmd.Flags().BoolVar(&harvestNoCSV, "no-csv", false, "Skip the CSV export after the crawl")
	rootCmd.AddCommand(harvestCmd)
}

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Crawl every Scholar profile on the department roster",
	Long: `Crawl every Google Scholar profile on the department roster and
store the collected publication records in the SQLite dataset. Each
finished author replaces their previous rows, so reruns refresh rather
than duplicate. After the crawl the dataset is exported to CSV unless
--no-csv is given.

Examples:
  sv harvest --roster faculty.csv
  sv harvest --force --max-authors 5
  sv --config dept.yaml harvest`,
	RunE: runHarvest,
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if harvestRoster != "" {
		cfg.Roster.Path = harvestRoster
	}
	if harvestForce {
		cfg.Fetch.Force = true
	}
	if harvestMaxAuthors > 0 {
		cfg.Crawl.MaxAuthors = harvestMaxAuthors
	}
	if cfg.Roster.Path == "" {
		exitWithError(ExitConfigError, "no roster configured; pass --roster or set roster.path")
	}

	log := newLogger(cfg)

	entries, err := roster.Load(cfg.Roster.Path, cfg.Roster.NameColumn, cfg.Roster.URLColumn)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitDataError, "roster %s has no data rows", cfg.Roster.Path)
	}

	store := openStore(cfg.Output.DatabasePath)
	defer store.Close()

	h := newHarvester(cfg, log)
	stats, err := h.Run(context.Background(), entries, store)
	if err != nil {
		code := ExitError
		if fetch.IsBlocked(err) {
			code = ExitBlocked
			log.Error().Msg("Scholar is serving an anti-automation check; wait before retrying")
		}
		// Authors flushed before the failure stay in the dataset.
		exitWithError(code, "harvest aborted after %d authors: %v", stats.Authors, err)
	}

	resp := HarvestResponse{
		Status:   "ok",
		Authors:  stats.Authors,
		Skipped:  stats.Skipped,
		Records:  stats.Records,
		Database: cfg.Output.DatabasePath,
	}

	if !harvestNoCSV {
		recs, err := store.All()
		if err != nil {
			exitWithError(ExitError, "reading dataset: %v", err)
		}
		if err := dataset.WriteCSVFile(cfg.Output.CSVPath, recs, cfg.Horizon.Range()); err != nil {
			exitWithError(ExitError, "writing CSV: %v", err)
		}
		resp.CSV = cfg.Output.CSVPath
	}

	if humanOutput {
		outputHuman("Harvested %d authors (%d records, %d roster rows skipped)\n", resp.Authors, resp.Records, resp.Skipped)
		outputHuman("Dataset: %s\n", resp.Database)
		if resp.CSV != "" {
			outputHuman("CSV: %s\n", resp.CSV)
		}
		return nil
	}
	return outputJSON(resp)
}
