package fetch

import (
	"fmt"
	"os"
	"path/filepath"
)

// Cache subdirectories, one per page kind.
const (
	listingDir = "author_pages"
	detailDir  = "view_pages"
)

// FetchFunc produces a page body on cache miss.
type FetchFunc func() (string, error)

// Store is a filesystem cache of raw fetched pages. Entries are written
// only for successful fetches, so failed or blocked requests are retried
// on the next run.
type Store struct {
	root string
}

// NewStore creates a cache rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// GetOrFetch returns the cached body at rel, or invokes fn and caches
// the result. With force set, fn runs and the entry is rewritten even
// when a cached copy exists.
func (s *Store) GetOrFetch(rel string, force bool, fn FetchFunc) (string, error) {
	path := filepath.Join(s.root, rel)

	if !force {
		if data, err := os.ReadFile(path); err == nil {
			return string(data), nil
		}
	}

	body, err := fn()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("writing cache entry: %w", err)
	}
	return body, nil
}

// ListingPath is the cache location for one listing page of a profile.
func ListingPath(profileID string, offset int) string {
	return filepath.Join(listingDir, profileID, fmt.Sprintf("cstart_%d.html", offset))
}

// DetailPath is the cache location for one publication detail page,
// keyed by the publication's position in the profile's listing.
func DetailPath(profileID string, index int) string {
	return filepath.Join(detailDir, profileID, fmt.Sprintf("pub_%05d.html", index))
}
