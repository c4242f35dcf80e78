package langdetect

import (
	"regexp"
	"strings"
)

// hostnameRe is the accepted domain grammar: dot-separated alphanumeric
// labels (internal hyphens allowed), final label at least two letters.
var hostnameRe = regexp.MustCompile(`^(?i)(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}$`)

// ExtractDomain derives a website domain from a tvg-id of the form
// "<domain>@<quality>" (e.g. "SunTV.in@SD"). The text before the first "@"
// (the whole value when no "@" is present) is the candidate; it is returned
// as-is when it passes the hostname grammar, otherwise "" — a missing or
// malformed domain is an expected state, not an error.
func ExtractDomain(tvgID string) string {
	candidate := tvgID
	if i := strings.IndexByte(tvgID, '@'); i >= 0 {
		candidate = tvgID[:i]
	}
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || !hostnameRe.MatchString(candidate) {
		return ""
	}
	return candidate
}
