package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matsen/scholarvest/internal/scholar"
)

const entrySeparator = "------------------------------------------------------------"

// YearDoc summarizes one written yearly document.
type YearDoc struct {
	Year    int
	Path    string
	Entries int
}

// WriteYearly writes one plain-text document per horizon year under dir,
// named <department>_<year>.txt. Entries are ordered by total citations
// descending then title; absent values print as "N/A". Undated records
// appear in no yearly document.
func WriteYearly(dir, department string, recs []scholar.Record, h scholar.Horizon) ([]YearDoc, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var docs []YearDoc
	for _, year := range h.Years() {
		var selected []scholar.Record
		for _, rec := range recs {
			if rec.Year != nil && *rec.Year == year {
				selected = append(selected, rec)
			}
		}
		sortYearEntries(selected)

		path := filepath.Join(dir, fmt.Sprintf("%s_%d.txt", department, year))
		if err := writeYearDoc(path, department, year, h.Max, selected); err != nil {
			return nil, err
		}
		docs = append(docs, YearDoc{Year: year, Path: path, Entries: len(selected)})
	}
	return docs, nil
}

// sortYearEntries orders by total citations descending, then title
// ascending. Records without a count sort as zero.
func sortYearEntries(recs []scholar.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		ci, cj := citedOrZero(recs[i]), citedOrZero(recs[j])
		if ci != cj {
			return ci > cj
		}
		return recs[i].Title < recs[j].Title
	})
}

func citedOrZero(rec scholar.Record) int {
	if rec.CitedBy == nil {
		return 0
	}
	return *rec.CitedBy
}

func writeYearDoc(path, department string, year, maxYear int, recs []scholar.Record) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Data source: Google Scholar (scholar.google.com)\n")
	fmt.Fprintf(&b, "Department: %s\n", department)
	fmt.Fprintf(&b, "Year: %d\n", year)
	b.WriteString("\nNotes:\n")
	fmt.Fprintf(&b, "- The document contains publication titles and available description snippets for works published in %d,\n", year)
	b.WriteString("  collected from the department's Google Scholar profiles.\n")
	b.WriteString("- Author names are intentionally omitted from entries.\n")
	b.WriteString("- Citation counts are as reported by Google Scholar at collection time. A \"citations_per_year_proxy\" is computed as:\n")
	fmt.Fprintf(&b, "    cited_by_total / (%d - publication_year + 1)\n", maxYear)
	b.WriteString("\n" + entrySeparator + "\n")

	for _, rec := range recs {
		fmt.Fprintf(&b, "TITLE: %s\n", rec.Title)
		fmt.Fprintf(&b, "CITED_BY_TOTAL: %s\n", naInt(rec.CitedBy))
		fmt.Fprintf(&b, "CITATIONS_PER_YEAR_PROXY: %s\n", naFloat(rec.PerYear))
		b.WriteString("DESCRIPTION:\n")
		b.WriteString(naString(rec.Description) + "\n")
		b.WriteString("\n" + entrySeparator + "\n\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func naInt(p *int) string {
	if p == nil {
		return "N/A"
	}
	return formatInt(p)
}

func naFloat(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return formatFloat(p)
}

func naString(p *string) string {
	if p == nil || *p == "" {
		return "N/A"
	}
	return *p
}
