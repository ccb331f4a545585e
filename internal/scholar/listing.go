package scholar

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Listing is one parsed page of a profile's publication table.
type Listing struct {
	Stubs   []Stub
	HasNext bool
}

// ParseListing extracts publication rows and the next-page affordance
// from one listing page. Rows without a title link are skipped; detail
// hrefs are resolved against base.
func ParseListing(body, base string) (Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Listing{}, fmt.Errorf("parsing listing page: %w", err)
	}

	var listing Listing
	doc.Find("tr.gsc_a_tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a.gsc_a_at").First()
		if link.Length() == 0 {
			return
		}
		title := normalizeSpace(link.Text())
		if title == "" {
			return
		}

		stub := Stub{Title: title}
		if href, ok := link.Attr("href"); ok {
			stub.DetailURL = AbsoluteURL(base, href)
		}
		stub.Year = parseDigits(row.Find("span.gsc_a_h").First().Text())
		stub.CitedBy = parseDigits(row.Find("a.gsc_a_ac").First().Text())
		listing.Stubs = append(listing.Stubs, stub)
	})
	listing.HasNext = hasNextPage(doc)
	return listing, nil
}

// hasNextPage reports whether the pagination button exists and is
// still enabled.
func hasNextPage(doc *goquery.Document) bool {
	btn := doc.Find("button#gsc_bpf_next").First()
	if btn.Length() == 0 {
		return false
	}
	_, disabled := btn.Attr("disabled")
	return !disabled
}
