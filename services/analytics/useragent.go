package analytics

import (
	"net/url"
	"strings"
)

// ClassifyDevice does a keyword test on the User-Agent string. Tablets are
// checked first because their agents usually also carry mobile keywords.
func ClassifyDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return "Tablet"
	case strings.Contains(ua, "mobi") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone"):
		return "Mobile"
	default:
		return "Desktop"
	}
}

// ReferrerDomain extracts the referrer hostname, stripping a leading "www.".
// Empty or unparseable referrers classify as "Direct".
func ReferrerDomain(referrer string) string {
	referrer = strings.TrimSpace(referrer)
	if referrer == "" {
		return "Direct"
	}
	u, err := url.Parse(referrer)
	if err != nil || u.Hostname() == "" {
		return "Direct"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
