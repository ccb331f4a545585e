// Package harvest walks roster profiles through the listing, detail,
// and citation-series pipeline, flushing each finished author to the
// dataset store.
package harvest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/matsen/scholarvest/internal/fetch"
	"github.com/matsen/scholarvest/internal/roster"
	"github.com/matsen/scholarvest/internal/scholar"
)

// Config bounds one harvest run.
type Config struct {
	Department      string
	BaseURL         string
	PageSize        int
	MaxListingPages int
	MaxAuthors      int // zero means no cap
	MaxPublications int // per author, zero means no cap
	Horizon         scholar.Horizon
	Force           bool
}

// Fetcher retrieves one page body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// SeriesRenderer recovers a citation series from a rendered page.
type SeriesRenderer interface {
	Series(ctx context.Context, url string) (map[int]int, error)
}

// RecordSink receives the finished records of one author.
type RecordSink interface {
	ReplaceAuthor(profileID string, recs []scholar.Record) error
}

// Harvester drives the crawl: one author at a time, one publication at
// a time, every page through the cache.
type Harvester struct {
	cfg      Config
	fetcher  Fetcher
	cache    *fetch.Store
	renderer SeriesRenderer // nil disables the rendered fallback
	log      zerolog.Logger
}

// New creates a Harvester. renderer may be nil.
func New(cfg Config, fetcher Fetcher, cache *fetch.Store, renderer SeriesRenderer, log zerolog.Logger) *Harvester {
	if cfg.BaseURL == "" {
		cfg.BaseURL = scholar.BaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.MaxListingPages <= 0 {
		cfg.MaxListingPages = 500
	}
	return &Harvester{cfg: cfg, fetcher: fetcher, cache: cache, renderer: renderer, log: log}
}

// Stats summarizes a finished run.
type Stats struct {
	Authors int
	Skipped int
	Records int
}

// Run processes roster entries in order, flushing each finished author
// to sink. Rows without a name, without a URL, or without a
// recognizable profile ID are skipped with a warning. Fetch-level
// failures abort the run; everything already flushed stays flushed.
func (h *Harvester) Run(ctx context.Context, entries []roster.Entry, sink RecordSink) (Stats, error) {
	var stats Stats

	for _, entry := range entries {
		if h.cfg.MaxAuthors > 0 && stats.Authors >= h.cfg.MaxAuthors {
			h.log.Info().Int("max_authors", h.cfg.MaxAuthors).Msg("author cap reached, stopping")
			break
		}

		if entry.Name == "" {
			stats.Skipped++
			h.log.Warn().Str("url", entry.ProfileURL).Msg("skipping roster row without a name")
			continue
		}
		if entry.ProfileURL == "" {
			stats.Skipped++
			h.log.Warn().Str("faculty", entry.Name).Msg("skipping roster row without a profile URL")
			continue
		}
		profileID := scholar.ProfileIDFromURL(entry.ProfileURL)
		if profileID == "" {
			stats.Skipped++
			h.log.Warn().Str("faculty", entry.Name).Str("url", entry.ProfileURL).
				Msg("skipping roster row without a user id in its URL")
			continue
		}

		h.log.Info().Str("faculty", entry.Name).Str("profile", profileID).Msg("harvesting author")

		recs, err := h.Author(ctx, profileID, entry.Name)
		if err != nil {
			return stats, fmt.Errorf("harvesting %s (%s): %w", entry.Name, profileID, err)
		}
		if err := sink.ReplaceAuthor(profileID, recs); err != nil {
			return stats, fmt.Errorf("storing records for %s: %w", entry.Name, err)
		}

		stats.Authors++
		stats.Records += len(recs)
		h.log.Info().Str("faculty", entry.Name).Int("records", len(recs)).Msg("author complete")
	}

	return stats, nil
}

// Author harvests one profile end to end and returns its records with
// attribution, derived metrics, and horizon filtering applied.
func (h *Harvester) Author(ctx context.Context, profileID, facultyName string) ([]scholar.Record, error) {
	stubs, err := h.listPublications(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var recs []scholar.Record
	seen := make(map[string]bool, len(stubs))
	for i, stub := range stubs {
		if stub.DetailURL != "" {
			if seen[stub.DetailURL] {
				h.log.Debug().Str("profile", profileID).Str("title", stub.Title).
					Msg("skipping duplicate listing row")
				continue
			}
			seen[stub.DetailURL] = true
		}

		rec, err := h.publication(ctx, profileID, i, stub)
		if err != nil {
			return nil, err
		}
		rec.Department = h.cfg.Department
		rec.Faculty = facultyName
		rec.ProfileID = profileID
		recs = append(recs, rec)
	}

	return scholar.FilterByHorizon(recs, h.cfg.Horizon), nil
}

// listPublications walks the paginated listing until an empty page, a
// dead next button, the page safety bound, or the publication cap.
func (h *Harvester) listPublications(ctx context.Context, profileID string) ([]scholar.Stub, error) {
	var stubs []scholar.Stub

	for page := 0; ; page++ {
		if page >= h.cfg.MaxListingPages {
			h.log.Warn().Str("profile", profileID).Int("pages", page).
				Msg("listing page bound reached, truncating")
			break
		}

		offset := page * h.cfg.PageSize
		pageURL := scholar.ListingURL(h.cfg.BaseURL, profileID, offset, h.cfg.PageSize)

		body, err := h.cache.GetOrFetch(fetch.ListingPath(profileID, offset), h.cfg.Force, func() (string, error) {
			return h.fetcher.Fetch(ctx, pageURL)
		})
		if err != nil {
			return nil, err
		}
		if fetch.Blocked(body) {
			return nil, fmt.Errorf("listing page at offset %d: %w", offset, fetch.ErrBlocked)
		}

		listing, err := scholar.ParseListing(body, h.cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		if len(listing.Stubs) == 0 {
			break
		}

		stubs = append(stubs, listing.Stubs...)
		h.log.Debug().Str("profile", profileID).Int("page", page).Int("rows", len(listing.Stubs)).
			Msg("listing page parsed")

		if h.cfg.MaxPublications > 0 && len(stubs) >= h.cfg.MaxPublications {
			stubs = stubs[:h.cfg.MaxPublications]
			h.log.Info().Str("profile", profileID).Int("max", h.cfg.MaxPublications).
				Msg("publication cap reached")
			break
		}
		if !listing.HasNext {
			break
		}
	}

	return stubs, nil
}

// publication fetches and merges one detail page. index keys the cache
// entry to the row's position in the listing; rows without a detail
// link produce a record from the stub alone.
func (h *Harvester) publication(ctx context.Context, profileID string, index int, stub scholar.Stub) (scholar.Record, error) {
	var det scholar.Detail

	if stub.DetailURL == "" {
		h.log.Debug().Str("profile", profileID).Str("title", stub.Title).Msg("listing row has no detail link")
	} else {
		body, err := h.cache.GetOrFetch(fetch.DetailPath(profileID, index), h.cfg.Force, func() (string, error) {
			return h.fetcher.Fetch(ctx, stub.DetailURL)
		})
		if err != nil {
			return scholar.Record{}, err
		}
		if fetch.Blocked(body) {
			return scholar.Record{}, fmt.Errorf("detail page for %q: %w", stub.Title, fetch.ErrBlocked)
		}

		det, err = scholar.ParseDetail(body)
		if err != nil {
			return scholar.Record{}, err
		}

		if len(det.Series) == 0 && h.renderer != nil {
			series, err := h.renderer.Series(ctx, stub.DetailURL)
			if err != nil {
				if fetch.IsBlocked(err) {
					return scholar.Record{}, err
				}
				h.log.Warn().Err(err).Str("title", stub.Title).Msg("rendered series fallback failed")
			} else {
				det.Series = series
			}
		}
	}

	rec := scholar.Merge(stub, det)
	rec.PerYear = scholar.CitationsPerYear(rec.CitedBy, rec.Year, h.cfg.Horizon.Max)
	return rec, nil
}
