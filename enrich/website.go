package enrich

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

// invalidEmailPatterns filters out matches that are not real contact
// addresses: placeholders, asset filenames, transactional senders.
var invalidEmailPatterns = []string{
	"example.com",
	"@example",
	".png",
	".jpg",
	".jpeg",
	".gif",
	".webp",
	".svg",
	"noreply",
	"no-reply",
	"sentry",
	"yourdomain",
	"youremail",
	"sampleemail",
}

// ScanForEmail returns the first plausible contact email found in the
// given HTML, or "" if none survives the junk filter.
func ScanForEmail(html string) string {
	for _, match := range emailRe.FindAllString(html, 20) {
		if isValidEmail(match) {
			return strings.ToLower(match)
		}
	}
	return ""
}

func isValidEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, pattern := range invalidEmailPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}
