// Package roster reads department faculty rosters from CSV.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Default column headers in department roster exports.
const (
	DefaultNameColumn = "Faculty Name"
	DefaultURLColumn  = "Google Scholar Link"
)

// Entry is one roster row. Either field may be blank; the harvester
// decides what to skip.
type Entry struct {
	Name       string
	ProfileURL string
}

// Load reads a roster CSV and returns its entries in file order. The
// header row must contain both configured columns; blank column names
// fall back to the defaults.
func Load(path, nameColumn, urlColumn string) ([]Entry, error) {
	if nameColumn == "" {
		nameColumn = DefaultNameColumn
	}
	if urlColumn == "" {
		urlColumn = DefaultURLColumn
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster %s is empty", path)
	}

	header := rows[0]
	nameIdx, urlIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case nameColumn:
			nameIdx = i
		case urlColumn:
			urlIdx = i
		}
	}
	if nameIdx < 0 || urlIdx < 0 {
		return nil, fmt.Errorf("roster %s must contain columns %q and %q, found: %s",
			path, nameColumn, urlColumn, strings.Join(header, ", "))
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var e Entry
		if nameIdx < len(row) {
			e.Name = strings.TrimSpace(row[nameIdx])
		}
		if urlIdx < len(row) {
			e.ProfileURL = strings.TrimSpace(row[urlIdx])
		}
		entries = append(entries, e)
	}
	return entries, nil
}
