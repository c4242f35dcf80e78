// Package safeurl validates stream URLs taken from untrusted playlists.
package safeurl

import (
	"net/url"
	"strings"
)

// IsHTTPOrHTTPS reports whether u parses as a URL with scheme http or https.
// Playlist entries with file://, ftp://, or other schemes are rejected so a
// hostile playlist cannot point the enricher at local files.
func IsHTTPOrHTTPS(u string) bool {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return false
	}
	s := parsed.Scheme
	return s == "http" || s == "https"
}
