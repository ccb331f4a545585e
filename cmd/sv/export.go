package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/scholarvest/internal/dataset"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output CSV path (defaults to config output.csv_path)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dataset to CSV",
	Long: `Export every record in the SQLite dataset to a department CSV.
Rows keep their harvest order; per-year citation columns span the
configured horizon.

Examples:
  sv export
  sv export --out dept_2026.csv`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	out := exportOut
	if out == "" {
		out = cfg.Output.CSVPath
	}

	store := openStore(cfg.Output.DatabasePath)
	defer store.Close()

	recs, err := store.All()
	if err != nil {
		exitWithError(ExitError, "reading dataset: %v", err)
	}
	if err := dataset.WriteCSVFile(out, recs, cfg.Horizon.Range()); err != nil {
		exitWithError(ExitError, "writing CSV: %v", err)
	}

	resp := ExportResponse{Status: "ok", Records: len(recs), CSV: out}
	if humanOutput {
		outputHuman("Exported %d records to %s\n", resp.Records, resp.CSV)
		return nil
	}
	return outputJSON(resp)
}
