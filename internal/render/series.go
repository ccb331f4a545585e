// Package render drives a headless browser to recover the yearly
// citation chart when the static page markup omits it.
package render

import (
	"regexp"
	"strconv"
	"strings"
)

// Chart bars label themselves year-first ("2019: 64 citations"); sparser
// layouts interleave year and count in the visible text.
var (
	labelRe = regexp.MustCompile(`(\d{4}).*?(\d+)\s+cit`)
	textRe  = regexp.MustCompile(`(\d{4})\s+(\d+)\s+cit`)
)

// SeriesFromLabels parses per-year counts out of chart bar labels, one
// year per label. Labels without a year followed by a count are ignored.
func SeriesFromLabels(labels []string) map[int]int {
	series := map[int]int{}
	for _, label := range labels {
		m := labelRe.FindStringSubmatch(strings.ToLower(label))
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		count, _ := strconv.Atoi(m[2])
		series[year] = count
	}
	return series
}

// SeriesFromText scans visible page text for year/count pairs.
func SeriesFromText(text string) map[int]int {
	series := map[int]int{}
	for _, m := range textRe.FindAllStringSubmatch(strings.ToLower(text), -1) {
		year, _ := strconv.Atoi(m[1])
		count, _ := strconv.Atoi(m[2])
		series[year] = count
	}
	return series
}
