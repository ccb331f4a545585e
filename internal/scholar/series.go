package scholar

import "regexp"

// Yearly citation series appear in detail pages either as a literal
// [[year,count],...] array or as parallel years=[...] / cites=[...]
// assignments inside the page scripts.
var (
	pairBlockRe = regexp.MustCompile(`\[\s*\[\s*\d{4}\s*,\s*\d+\s*\]\s*(?:,\s*\[\s*\d{4}\s*,\s*\d+\s*\]\s*)+\]`)
	pairRe      = regexp.MustCompile(`\[\s*(\d{4})\s*,\s*(\d+)\s*\]`)
	parallelRe  = regexp.MustCompile(`(?s)years\s*=\s*(\[[^\]]+\])\s*;?.*?cites\s*=\s*(\[[^\]]+\])`)
	numberRe    = regexp.MustCompile(`\d+`)
)

// ParseSeries pulls per-year citation counts out of a detail page body.
// The pair-array form wins over the parallel-array form; each form needs
// at least two entries to count. An empty map means neither appeared.
func ParseSeries(body string) map[int]int {
	series := map[int]int{}

	if block := pairBlockRe.FindString(body); block != "" {
		for _, m := range pairRe.FindAllStringSubmatch(block, -1) {
			year := parseDigits(m[1])
			count := parseDigits(m[2])
			if year != nil && count != nil {
				series[*year] = *count
			}
		}
		if len(series) > 0 {
			return series
		}
	}

	m := parallelRe.FindStringSubmatch(body)
	if m == nil {
		return series
	}
	years := numberRe.FindAllString(m[1], -1)
	counts := numberRe.FindAllString(m[2], -1)
	if len(years) != len(counts) || len(years) < 2 {
		return series
	}
	for i, ys := range years {
		year := parseDigits(ys)
		count := parseDigits(counts[i])
		if year != nil && count != nil {
			series[*year] = *count
		}
	}
	return series
}
