package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matsen/scholarvest/internal/scholar"
)

// baseColumns precede the per-year citation columns in the CSV export.
var baseColumns = []string{
	"department", "faculty_name", "title", "publication_year",
	"cited_by_total", "citations_per_year_proxy", "description",
	"profile_id", "detail_url",
}

// CSVHeader returns the export header: the base columns followed by one
// cites_<year> column per horizon year.
func CSVHeader(h scholar.Horizon) []string {
	header := append([]string{}, baseColumns...)
	for _, y := range h.Years() {
		header = append(header, fmt.Sprintf("cites_%d", y))
	}
	return header
}

// WriteCSV writes records in their given order. Absent values become
// empty cells.
func WriteCSV(w io.Writer, recs []scholar.Record, h scholar.Horizon) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader(h)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	years := h.Years()
	for _, rec := range recs {
		row := []string{
			rec.Department,
			rec.Faculty,
			rec.Title,
			formatInt(rec.Year),
			formatInt(rec.CitedBy),
			formatFloat(rec.PerYear),
			stringOrEmpty(rec.Description),
			rec.ProfileID,
			rec.DetailURL,
		}
		for _, y := range years {
			if n, ok := rec.Series[y]; ok {
				row = append(row, strconv.Itoa(n))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %q: %w", rec.Title, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the export to path, creating parent directories
// as needed.
func WriteCSVFile(path string, recs []scholar.Record, h scholar.Horizon) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, recs, h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func formatFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}

func stringOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
