package fetch

import (
	"errors"
	"fmt"
)

// Common errors returned by the fetch layer.
var (
	// ErrBlocked indicates Scholar served an anti-automation interstitial
	// instead of page content. Continuing would only poison the cache.
	ErrBlocked = errors.New("blocked by Google Scholar anti-automation check")
)

// TransportError wraps network and HTTP status failures for a single URL.
type TransportError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsBlocked returns true if the error indicates an anti-automation block.
func IsBlocked(err error) bool {
	return errors.Is(err, ErrBlocked)
}

// IsTransport returns true if the error originated from the network or
// an unexpected HTTP status.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
