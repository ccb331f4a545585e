package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/scholarvest/internal/dataset"
)

var (
	yearlyDir  string
	yearlyDept string
)

func init() {
	yearlyCmd.Flags().StringVar(&yearlyDir, "dir", "", "Output directory (defaults to config output.yearly_dir)")
	yearlyCmd.Flags().StringVar(&yearlyDept, "department", "", "Department label for the documents (defaults to config)")
	rootCmd.AddCommand(yearlyCmd)
}

var yearlyCmd = &cobra.Command{
	Use:   "yearly",
	Short: "Write per-year plain-text documents from the dataset",
	Long: `Write one plain-text document per horizon year, each listing that
year's publications sorted by citation count. The format is meant for
ingestion into notebook and retrieval tools that want one document per
source year.

Examples:
  sv yearly
  sv yearly --dir docs/2026_review --department "Computer Science"`,
	RunE: runYearly,
}

func runYearly(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	dir := yearlyDir
	if dir == "" {
		dir = cfg.Output.YearlyDir
	}
	dept := yearlyDept
	if dept == "" {
		dept = cfg.Department
	}

	store := openStore(cfg.Output.DatabasePath)
	defer store.Close()

	recs, err := store.All()
	if err != nil {
		exitWithError(ExitError, "reading dataset: %v", err)
	}

	docs, err := dataset.WriteYearly(dir, dept, recs, cfg.Horizon.Range())
	if err != nil {
		exitWithError(ExitError, "writing yearly documents: %v", err)
	}

	resp := YearlyResponse{Status: "ok", Dir: dir}
	for _, d := range docs {
		resp.Docs = append(resp.Docs, YearlyDocSummary{Year: d.Year, Path: d.Path, Entries: d.Entries})
	}
	if humanOutput {
		for _, d := range resp.Docs {
			outputHuman("%d: %s (%d entries)\n", d.Year, d.Path, d.Entries)
		}
		return nil
	}
	return outputJSON(resp)
}
