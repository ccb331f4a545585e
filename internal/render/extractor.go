package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/matsen/scholarvest/internal/fetch"
)

// DefaultTimeout bounds one rendered page load.
const DefaultTimeout = 45 * time.Second

// chartLabelsJS collects the aria-label texts of the rendered chart bars.
const chartLabelsJS = `Array.from(document.querySelectorAll("[aria-label*='citations']")).map(function(n) { return n.getAttribute("aria-label") || ""; })`

// Extractor loads detail pages in headless Chrome and reads the citation
// chart out of the rendered DOM.
type Extractor struct {
	timeout time.Duration
}

// NewExtractor creates a rendered-page series extractor. A zero timeout
// falls back to DefaultTimeout.
func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{timeout: timeout}
}

// Series renders pageURL and extracts per-year citation counts from the
// chart bar labels, falling back to a scan of the visible text. An empty
// map means the rendered page showed no chart either.
func (e *Extractor) Series(ctx context.Context, pageURL string) (map[int]int, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	bctx, bcancel := chromedp.NewContext(ctx)
	defer bcancel()

	var rendered string
	err := chromedp.Run(bctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &rendered),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", pageURL, err)
	}
	if fetch.Blocked(rendered) {
		return nil, fmt.Errorf("%s: %w", pageURL, fetch.ErrBlocked)
	}

	var labels []string
	if err := chromedp.Run(bctx, chromedp.Evaluate(chartLabelsJS, &labels)); err != nil {
		return nil, fmt.Errorf("reading chart labels on %s: %w", pageURL, err)
	}
	if series := SeriesFromLabels(labels); len(series) > 0 {
		return series, nil
	}

	var bodyText string
	if err := chromedp.Run(bctx, chromedp.Text("body", &bodyText, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("reading page text on %s: %w", pageURL, err)
	}
	return SeriesFromText(bodyText), nil
}
