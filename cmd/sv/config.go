package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Department    string  `json:"department"`
	RosterPath    string  `json:"roster_path"`
	CacheDir      string  `json:"cache_dir"`
	DelaySeconds  float64 `json:"delay_seconds"`
	PageSize      int     `json:"page_size"`
	RenderEnabled bool    `json:"render_enabled"`
	HorizonMin    int     `json:"horizon_min"`
	HorizonMax    int     `json:"horizon_max"`
	DatabasePath  string  `json:"database_path"`
	CSVPath       string  `json:"csv_path"`
	YearlyDir     string  `json:"yearly_dir"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration the other commands would run with, after
merging defaults, the --config file, and environment overrides.`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	resp := ConfigResponse{
		Department:    cfg.Department,
		RosterPath:    cfg.Roster.Path,
		CacheDir:      cfg.Fetch.CacheDir,
		DelaySeconds:  cfg.Fetch.DelaySeconds,
		PageSize:      cfg.Crawl.PageSize,
		RenderEnabled: cfg.Render.Enabled,
		HorizonMin:    cfg.Horizon.MinYear,
		HorizonMax:    cfg.Horizon.MaxYear,
		DatabasePath:  cfg.Output.DatabasePath,
		CSVPath:       cfg.Output.CSVPath,
		YearlyDir:     cfg.Output.YearlyDir,
	}
	if humanOutput {
		outputHuman("department:  %s\n", resp.Department)
		outputHuman("roster:      %s\n", resp.RosterPath)
		outputHuman("cache dir:   %s\n", resp.CacheDir)
		outputHuman("delay:       %.1fs\n", resp.DelaySeconds)
		outputHuman("page size:   %d\n", resp.PageSize)
		outputHuman("render:      %t\n", resp.RenderEnabled)
		outputHuman("horizon:     %d-%d\n", resp.HorizonMin, resp.HorizonMax)
		outputHuman("database:    %s\n", resp.DatabasePath)
		outputHuman("csv:         %s\n", resp.CSVPath)
		outputHuman("yearly dir:  %s\n", resp.YearlyDir)
		return nil
	}
	return outputJSON(resp)
}
