// Package scholar parses Google Scholar profile pages into publication
// records: paginated listing rows, per-publication detail pages, and the
// yearly citation series embedded in page scripts.
package scholar

import "strings"

// Stub is one row of a profile's publication listing. Year and CitedBy
// are nil when the row does not show them.
type Stub struct {
	Title     string
	Year      *int
	CitedBy   *int
	DetailURL string
}

// Detail holds the fields extracted from a publication detail page.
// Every field is optional; an empty Series means no yearly breakdown
// appeared in the static page.
type Detail struct {
	Title       *string
	Year        *int
	Description *string
	CitedBy     *int
	Series      map[int]int
}

// Record is one publication attributed to a roster entry, ready for
// persistence and export.
type Record struct {
	Department  string
	Faculty     string
	Title       string
	Year        *int
	CitedBy     *int
	PerYear     *float64
	Description *string
	ProfileID   string
	DetailURL   string
	Series      map[int]int
}

// Horizon is the closed year range that filtering and the per-year
// export columns operate on.
type Horizon struct {
	Min int
	Max int
}

// DefaultHorizon covers the years broken out by the citation exports.
func DefaultHorizon() Horizon {
	return Horizon{Min: 2015, Max: 2026}
}

// Contains reports whether year falls inside the horizon, inclusive.
func (h Horizon) Contains(year int) bool {
	return year >= h.Min && year <= h.Max
}

// Years lists the horizon years in ascending order.
func (h Horizon) Years() []int {
	if h.Max < h.Min {
		return nil
	}
	years := make([]int, 0, h.Max-h.Min+1)
	for y := h.Min; y <= h.Max; y++ {
		years = append(years, y)
	}
	return years
}

// normalizeSpace collapses runs of whitespace into single spaces and
// trims the ends, matching how rendered text is compared.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parseDigits converts a string of decimal digits to an int. Anything
// else (signs, blanks, stray characters) yields nil.
func parseDigits(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil
		}
		n = n*10 + int(r-'0')
	}
	return &n
}
