// Package playlist parses M3U playlists into channel records. Entries with
// unusable stream URLs are dropped; everything else in the #EXTINF line is
// carried over as channel metadata.
package playlist

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/channellang/channel-lang/internal/dataset"
	"github.com/channellang/channel-lang/internal/langdetect"
	"github.com/channellang/channel-lang/internal/safeurl"
)

const maxLineSize = 1 << 20 // 1 MiB per line

// Parse reads an M3U playlist from r and returns one channel per entry.
// Streaming: the whole playlist never needs to fit in one allocation.
func Parse(r io.Reader) ([]dataset.Channel, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineSize)
	var channels []dataset.Channel
	var extinf string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == "#EXTM3U" {
			continue
		}
		if strings.HasPrefix(line, "#EXTINF:") {
			extinf = line
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if extinf != "" {
			if safeurl.IsHTTPOrHTTPS(line) {
				channels = append(channels, channelFromEXTINF(extinf, len(channels)))
			}
			extinf = ""
		}
	}
	return channels, sc.Err()
}

// ParseBytes parses an M3U playlist held in memory.
func ParseBytes(data []byte) ([]dataset.Channel, error) {
	return Parse(bytes.NewReader(data))
}

func channelFromEXTINF(extinf string, index int) dataset.Channel {
	c := dataset.Channel{
		ID:       attr(extinf, "tvg-id"),
		Name:     displayName(extinf),
		TVGID:    attr(extinf, "tvg-id"),
		Language: normalizeAttrLanguage(attr(extinf, "tvg-language")),
	}
	if c.Name == "" {
		c.Name = attr(extinf, "tvg-name")
	}
	if c.ID == "" {
		c.ID = "ch_" + strconv.Itoa(index+1)
	}
	return c
}

// displayName returns the text after the final comma of the EXTINF line.
// Attribute values may themselves contain commas, so scan from the last
// closing quote onward.
func displayName(extinf string) string {
	start := 0
	if q := strings.LastIndex(extinf, `"`); q >= 0 {
		start = q
	}
	if i := strings.Index(extinf[start:], ","); i >= 0 {
		return strings.TrimSpace(extinf[start+i+1:])
	}
	return ""
}

// attr extracts a key="value" attribute from an EXTINF line.
func attr(extinf, key string) string {
	prefix := key + `="`
	if i := strings.Index(extinf, prefix); i >= 0 {
		i += len(prefix)
		if j := strings.Index(extinf[i:], `"`); j >= 0 {
			return extinf[i : i+j]
		}
	}
	return ""
}

// normalizeAttrLanguage maps a tvg-language attribute (a display name like
// "Tamil", sometimes several joined by ';') to a language code. Unmapped
// values are dropped so a later enrichment run can decide properly.
func normalizeAttrLanguage(v string) string {
	if v == "" {
		return ""
	}
	first := v
	if i := strings.IndexAny(v, ";,"); i >= 0 {
		first = v[:i]
	}
	return langdetect.NormalizeCode(first)
}
