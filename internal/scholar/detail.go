package scholar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	yearTokenRe = regexp.MustCompile(`\d{4}`)
	citedByRe   = regexp.MustCompile(`Cited by\s+(\d+)`)
)

// ParseDetail extracts title, description, publication year, total
// citation count, and the yearly citation series from a publication
// detail page. Missing fields stay nil; they are not errors.
func ParseDetail(body string) (Detail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Detail{}, fmt.Errorf("parsing detail page: %w", err)
	}

	var d Detail

	title := normalizeSpace(doc.Find("#gsc_oci_title").First().Text())
	if title == "" {
		title = normalizeSpace(doc.Find(".gsc_oci_title_link").First().Text())
	}
	if title != "" {
		d.Title = &title
	}

	fields := detailFields(doc)
	if v := fields["Description"]; v != "" {
		d.Description = &v
	}
	if v := fields["Publication date"]; v != "" {
		if tok := yearTokenRe.FindString(v); tok != "" {
			d.Year = parseDigits(tok)
		}
	}
	if v := fields["Total citations"]; v != "" {
		d.CitedBy = citedByCount(v)
	}
	if d.CitedBy == nil {
		// Some page variants only carry the count outside the field table.
		d.CitedBy = citedByCount(body)
	}

	d.Series = ParseSeries(body)
	return d, nil
}

// detailFields pairs the field labels with their values by position. A
// pair exists only when both sides exist at the same index.
func detailFields(doc *goquery.Document) map[string]string {
	labels := doc.Find(".gsc_oci_field")
	values := doc.Find(".gsc_oci_value")
	n := labels.Length()
	if values.Length() < n {
		n = values.Length()
	}
	fields := make(map[string]string, n)
	for i := 0; i < n; i++ {
		fields[normalizeSpace(labels.Eq(i).Text())] = normalizeSpace(values.Eq(i).Text())
	}
	return fields
}

func citedByCount(s string) *int {
	m := citedByRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	return parseDigits(m[1])
}
