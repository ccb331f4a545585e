package scholar

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// BaseURL is the Google Scholar origin profile URLs resolve against.
const BaseURL = "https://scholar.google.com"

var profileIDRe = regexp.MustCompile(`[?&]user=([^&]+)`)

// ProfileIDFromURL extracts the user= identifier from a profile URL.
// It returns "" when the URL carries no user parameter.
func ProfileIDFromURL(rawURL string) string {
	m := profileIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// ListingURL builds the paginated publication listing URL for a profile.
func ListingURL(base, profileID string, offset, pageSize int) string {
	q := url.Values{}
	q.Set("hl", "en")
	q.Set("user", profileID)
	q.Set("cstart", strconv.Itoa(offset))
	q.Set("pagesize", strconv.Itoa(pageSize))
	return fmt.Sprintf("%s/citations?%s", strings.TrimRight(base, "/"), q.Encode())
}

// AbsoluteURL resolves an href from a Scholar page against the base
// origin. Absolute hrefs pass through untouched.
func AbsoluteURL(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return strings.TrimRight(base, "/") + href
}
