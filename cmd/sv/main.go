// Package main provides the sv CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// cfgFile is an optional path to a YAML config file
var cfgFile string

func main() {
	// A missing .env file is fine; values fall back to the config file.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sv",
	Short: "Department-scale Google Scholar publication harvester",
	Long: `sv crawls Google Scholar profiles for a department roster and
collects per-publication records: title, year, citation counts, the
per-year citation series, and a citations-per-year metric.

Fetched pages are cached on disk so interrupted runs resume without
refetching, and finished records land in a SQLite dataset that the
export and yearly commands turn into CSV and plain-text documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config file")
	rootCmd.Version = Version
}
