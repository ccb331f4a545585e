package fetch

import "strings"

// Blocked reports whether a response body looks like a CAPTCHA or
// unusual-traffic interstitial rather than profile content. Matching is
// case-insensitive; cached bodies get the same check as live ones.
func Blocked(body string) bool {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "recaptcha") {
		return true
	}
	if strings.Contains(lower, "unusual traffic") {
		return true
	}
	return strings.Contains(lower, "sorry") && strings.Contains(lower, "automated queries")
}
