// Package integration exercises the harvest pipeline end to end: a
// Scholar-shaped test server, the real HTTP client and page cache, the
// SQLite dataset, and the CSV and yearly exports.
package integration

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/matsen/scholarvest/internal/dataset"
	"github.com/matsen/scholarvest/internal/fetch"
	"github.com/matsen/scholarvest/internal/harvest"
	"github.com/matsen/scholarvest/internal/roster"
	"github.com/matsen/scholarvest/internal/scholar"
)

func listingRow(href, title, cited, year string) string {
	return fmt.Sprintf(`<tr class="gsc_a_tr">
  <td><a href="%s" class="gsc_a_at">%s</a></td>
  <td><a class="gsc_a_ac">%s</a></td>
  <td><span class="gsc_a_h">%s</span></td>
</tr>`, href, title, cited, year)
}

func listingPage(hasNext bool, rows ...string) string {
	next := `<button id="gsc_bpf_next" disabled="disabled"></button>`
	if hasNext {
		next = `<button id="gsc_bpf_next"></button>`
	}
	return "<html><body><table>\n" + strings.Join(rows, "\n") + "\n</table>" + next + "</body></html>"
}

func detailPage(title, date, cited, desc, series string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(`<div id="gsc_oci_title">` + title + `</div>`)
	if date != "" {
		b.WriteString(`<div class="gs_scl"><div class="gsc_oci_field">Publication date</div><div class="gsc_oci_value">` + date + `</div></div>`)
	}
	if desc != "" {
		b.WriteString(`<div class="gs_scl"><div class="gsc_oci_field">Description</div><div class="gsc_oci_value">` + desc + `</div></div>`)
	}
	if cited != "" {
		b.WriteString(`<div class="gs_scl"><div class="gsc_oci_field">Total citations</div><div class="gsc_oci_value"><a href="#">Cited by ` + cited + `</a></div></div>`)
	}
	if series != "" {
		b.WriteString(`<script>var graph = ` + series + `;</script>`)
	}
	b.WriteString("</body></html>")
	return b.String()
}

// scholarServer serves a two-page listing for prof1 and a blocked
// interstitial for prof2, counting requests.
func scholarServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()

	details := map[string]string{
		"0": detailPage("Streaming graph partitioning", "2019/6/1", "120",
			"Partitioning strategy for high-rate edge streams.", "[[2019,30],[2020,40],[2021,50]]"),
		"1": detailPage("Archived technical note", "2012/1/1", "8", "", ""),
		"2": detailPage("Sensor calibration in the field", "2021/9/15", "15", "", ""),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/citations", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		q := r.URL.Query()

		if q.Get("view_op") == "view_citation" {
			page, ok := details[q.Get("p")]
			if !ok {
				http.NotFound(w, r)
				return
			}
			fmt.Fprint(w, page)
			return
		}

		if q.Get("user") == "prof2" {
			fmt.Fprint(w, "<html><body>Please complete the reCAPTCHA to continue.</body></html>")
			return
		}

		switch q.Get("cstart") {
		case "0":
			fmt.Fprint(w, listingPage(true,
				listingRow("/citations?view_op=view_citation&user=prof1&p=0", "Streaming graph partitioning", "120", "2019"),
				listingRow("/citations?view_op=view_citation&user=prof1&p=1", "Archived technical note", "8", "2012"),
			))
		case "2":
			fmt.Fprint(w, listingPage(false,
				listingRow("/citations?view_op=view_citation&user=prof1&p=2", "Sensor calibration in the field", "15", "2021"),
			))
		default:
			fmt.Fprint(w, listingPage(false))
		}
	})
	return httptest.NewServer(mux)
}

func writeRoster(t *testing.T, dir string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, "faculty.csv")
	content := roster.DefaultNameColumn + "," + roster.DefaultURLColumn + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newHarvester(baseURL, cacheDir string, client *http.Client) *harvest.Harvester {
	fc := fetch.NewClient(
		fetch.WithHTTPClient(client),
		fetch.WithDelay(0),
	)
	cfg := harvest.Config{
		Department: "CS",
		BaseURL:    baseURL,
		PageSize:   2,
		Horizon:    scholar.Horizon{Min: 2015, Max: 2026},
	}
	return harvest.New(cfg, fc, fetch.NewStore(cacheDir), nil, zerolog.Nop())
}

func TestHarvestPipeline(t *testing.T) {
	var hits int64
	srv := scholarServer(t, &hits)
	defer srv.Close()

	tmp := t.TempDir()
	rosterPath := writeRoster(t, tmp,
		"J. Rivera,"+srv.URL+"/citations?hl=en&user=prof1",
		"No Link,",
	)
	entries, err := roster.Load(rosterPath, "", "")
	if err != nil {
		t.Fatal(err)
	}

	store, err := dataset.Open(filepath.Join(tmp, "scholarvest.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	cacheDir := filepath.Join(tmp, "cache")
	h := newHarvester(srv.URL, cacheDir, srv.Client())
	stats, err := h.Run(context.Background(), entries, store)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if stats.Authors != 1 || stats.Skipped != 1 {
		t.Errorf("expected 1 author and 1 skip, got %+v", stats)
	}
	// The 2012 note falls outside the horizon.
	if stats.Records != 2 {
		t.Errorf("expected 2 records, got %d", stats.Records)
	}

	recs, err := store.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(recs))
	}
	first := recs[0]
	if first.Title != "Streaming graph partitioning" {
		t.Errorf("unexpected first record: %q", first.Title)
	}
	if first.Faculty != "J. Rivera" || first.Department != "CS" || first.ProfileID != "prof1" {
		t.Errorf("attribution missing: %+v", first)
	}
	// 120 / (2026 - 2019 + 1) = 15
	if first.PerYear == nil || *first.PerYear != 15 {
		t.Errorf("expected per-year 15, got %v", first.PerYear)
	}
	if first.Series[2020] != 40 {
		t.Errorf("expected series from detail script, got %v", first.Series)
	}

	// CSV export: header plus two rows, with the series spread into
	// per-year columns.
	csvPath := filepath.Join(tmp, "dept.csv")
	horizon := scholar.Horizon{Min: 2015, Max: 2026}
	if err := dataset.WriteCSVFile(csvPath, recs, horizon); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(f).ReadAll()
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[1][2] != "Streaming graph partitioning" {
		t.Errorf("unexpected CSV title: %q", rows[1][2])
	}
	if rows[1][5] != "15" {
		t.Errorf("expected per-year cell 15, got %q", rows[1][5])
	}
	// Base columns end at index 8; cites_2015 starts at 9, so 2020 is 14.
	if rows[1][14] != "40" {
		t.Errorf("expected cites_2020 cell 40, got %q", rows[1][14])
	}

	// Yearly documents: one per horizon year, entries only where dated.
	yearlyDir := filepath.Join(tmp, "yearly")
	docs, err := dataset.WriteYearly(yearlyDir, "CS", recs, horizon)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 12 {
		t.Fatalf("expected 12 yearly docs, got %d", len(docs))
	}
	data, err := os.ReadFile(filepath.Join(yearlyDir, "CS_2019.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "TITLE: Streaming graph partitioning") {
		t.Error("expected 2019 document to list the 2019 publication")
	}
	if !strings.Contains(string(data), "CITED_BY_TOTAL: 120") {
		t.Error("expected citation count in 2019 document")
	}

	// A second run over the same cache must not touch the network and
	// must replace rather than duplicate rows.
	before := atomic.LoadInt64(&hits)
	h2 := newHarvester(srv.URL, cacheDir, srv.Client())
	if _, err := h2.Run(context.Background(), entries, store); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != before {
		t.Errorf("expected cached rerun, got %d extra requests", got-before)
	}
	n, err := store.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected rerun to replace rows, got %d", n)
	}
}

func TestHarvestBlockedMidRun(t *testing.T) {
	var hits int64
	srv := scholarServer(t, &hits)
	defer srv.Close()

	tmp := t.TempDir()
	rosterPath := writeRoster(t, tmp,
		"J. Rivera,"+srv.URL+"/citations?hl=en&user=prof1",
		"M. Okafor,"+srv.URL+"/citations?hl=en&user=prof2",
	)
	entries, err := roster.Load(rosterPath, "", "")
	if err != nil {
		t.Fatal(err)
	}

	store, err := dataset.Open(filepath.Join(tmp, "scholarvest.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	h := newHarvester(srv.URL, filepath.Join(tmp, "cache"), srv.Client())
	stats, err := h.Run(context.Background(), entries, store)
	if !fetch.IsBlocked(err) {
		t.Fatalf("expected blocked error, got %v", err)
	}
	if stats.Authors != 1 {
		t.Errorf("expected first author to finish before the block, got %d", stats.Authors)
	}

	// The finished author survives the abort.
	n, err := store.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 persisted records, got %d", n)
	}

	// The blocked page must not be cached, so a retry refetches it.
	blockedCache := filepath.Join(tmp, "cache", fetch.ListingPath("prof2", 0))
	if _, err := os.Stat(blockedCache); err == nil {
		t.Error("expected blocked page to stay uncached")
	}
}
