// Package iptvorg provides a local channel database derived from the iptv-org
// community channel list (https://iptv-org.github.io/api/channels.json).
//
// Dataset tvg-ids follow the same shape as iptv-org channel ids
// ("SunTV.in@HD" → "suntv.in"), so the DB is a good fallback source when a
// tvg-id alone yields no usable domain: the channel record carries a website
// URL and declared broadcast languages.
//
// Typical workflow:
//
//  1. Run `channel-lang iptvorg-harvest -out /path/to/iptvorg.json` to build
//     and persist the local DB.
//  2. Set CHANNEL_LANG_IPTVORG_DB=/path/to/iptvorg.json so enrichment runs
//     can consult it.
package iptvorg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/channellang/channel-lang/internal/httpclient"
)

const defaultChannelsURL = "https://iptv-org.github.io/api/channels.json"

// Channel is one record from the iptv-org channels.json API. Languages are
// ISO 639-3 codes (e.g. "tam", "tel").
type Channel struct {
	ID        string   `json:"id"`        // e.g. "suntv.in"
	Name      string   `json:"name"`      // e.g. "Sun TV"
	AltNames  []string `json:"alt_names"` // alternative display names
	Country   string   `json:"country"`   // ISO 3166-1 alpha-2 upper-case
	Languages []string `json:"languages"`
	Website   string   `json:"website"`
	IsNSFW    bool     `json:"is_nsfw"`
}

// DB is the in-memory iptv-org channel database with lookup indices.
type DB struct {
	Channels []Channel `json:"channels"`

	// indices rebuilt after load/harvest
	byID       map[string]int   // lower-cased channel id → Channels index
	byNormName map[string][]int // normalised name → Channels indices
}

// Len returns the number of channels in the DB.
func (db *DB) Len() int { return len(db.Channels) }

// Load reads the DB from a JSON file. Returns an empty DB if the file does
// not exist, so enrichment degrades gracefully without one.
func Load(path string) (*DB, error) {
	db := &DB{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			db.buildIndices()
			return db, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, db); err != nil {
		return nil, err
	}
	db.buildIndices()
	return db, nil
}

// Save persists the DB to a JSON file.
func (db *DB) Save(path string) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Harvest downloads channels.json from channelsURL (or the default when
// empty), replaces the DB contents, and rebuilds indices. The endpoint
// rate-limits, so the request goes through the shared retry policy.
func (db *DB) Harvest(ctx context.Context, channelsURL string, client *http.Client) (int, error) {
	if channelsURL == "" {
		channelsURL = defaultChannelsURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, channelsURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "channel-lang/1.0 (+iptv-org-harvest)")
	resp, err := httpclient.DoWithRetry(ctx, client, req, httpclient.DefaultRetryPolicy)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("iptv-org channels.json: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	var channels []Channel
	if err := json.Unmarshal(body, &channels); err != nil {
		return 0, fmt.Errorf("iptv-org channels.json parse: %w", err)
	}
	db.Channels = channels
	db.buildIndices()
	return len(channels), nil
}

// Lookup finds the channel for a dataset row. Priority:
//
//  1. Exact id match on the tvg-id with any "@Suffix" stripped.
//  2. Exact normalised name → single match.
//  3. Stripped name (minus country prefix and quality markers) → single match.
//
// Returns nil when nothing matches unambiguously.
func (db *DB) Lookup(tvgID, displayName string) *Channel {
	if id := canonicalID(tvgID); id != "" {
		if i, ok := db.byID[id]; ok {
			return &db.Channels[i]
		}
	}
	if displayName != "" {
		if ids := db.byNormName[normName(displayName)]; len(ids) == 1 {
			return &db.Channels[ids[0]]
		}
		stripped := stripForMatch(displayName)
		if stripped != "" && stripped != normName(displayName) {
			if ids := db.byNormName[stripped]; len(ids) == 1 {
				return &db.Channels[ids[0]]
			}
		}
	}
	return nil
}

// WebsiteDomain returns the hostname of the matched channel's website, with
// any "www." prefix removed. Empty when no channel matches or the record has
// no website.
func (db *DB) WebsiteDomain(tvgID, displayName string) string {
	ch := db.Lookup(tvgID, displayName)
	if ch == nil || ch.Website == "" {
		return ""
	}
	u, err := url.Parse(ch.Website)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// iso6393 maps the ISO 639-3 codes iptv-org uses to the codes the detector
// assigns. Only the languages the detector supports appear here.
var iso6393 = map[string]string{
	"tam": "ta",
	"tel": "te",
	"kan": "kn",
	"mal": "ml",
	"hin": "hi",
	"ben": "bn",
	"guj": "gu",
	"pan": "pa",
	"mar": "mr",
	"ori": "or",
	"asm": "as",
	"urd": "ur",
	"bho": "bho",
	"eng": "en",
}

// KnownLanguage returns the first supported declared language of the matched
// channel, or "" when no channel matches or none of its languages are
// supported.
func (db *DB) KnownLanguage(tvgID, displayName string) string {
	ch := db.Lookup(tvgID, displayName)
	if ch == nil {
		return ""
	}
	for _, l := range ch.Languages {
		if code, ok := iso6393[strings.ToLower(l)]; ok {
			return code
		}
	}
	return ""
}

// --- index build -------------------------------------------------------------

func (db *DB) buildIndices() {
	db.byID = make(map[string]int, len(db.Channels))
	db.byNormName = make(map[string][]int, len(db.Channels)*2)

	for i, ch := range db.Channels {
		if id := strings.ToLower(strings.TrimSpace(ch.ID)); id != "" {
			if _, dup := db.byID[id]; !dup {
				db.byID[id] = i
			}
		}
		names := append([]string{ch.Name}, ch.AltNames...)
		for _, n := range names {
			k := normName(n)
			if k != "" {
				db.byNormName[k] = appendUniq(db.byNormName[k], i)
			}
			ks := stripForMatch(n)
			if ks != "" && ks != k {
				db.byNormName[ks] = appendUniq(db.byNormName[ks], i)
			}
		}
	}
}

func appendUniq(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

// --- normalisation -----------------------------------------------------------

// canonicalID lowercases a tvg-id and strips the "@Suffix" quality marker:
// "SunTV.in@HD" → "suntv.in".
func canonicalID(tvgID string) string {
	id := strings.TrimSpace(tvgID)
	if at := strings.IndexByte(id, '@'); at >= 0 {
		id = id[:at]
	}
	return strings.ToLower(strings.TrimSpace(id))
}

// qualityMarkerRe strips common quality/re-encode suffixes used in IPTV feeds.
var qualityMarkerRe = regexp.MustCompile(
	`(?i)\s*(HD2?|UHD|4K|8K|SD|RAW|FHD|ᴴᴰ|ᵁᴴᴰ)\s*$`,
)

// countryPrefixMatchRe strips "IN: ", "US: " etc from the start of names.
var countryPrefixMatchRe = regexp.MustCompile(`(?i)^[A-Z]{1,5}:\s*`)

var nonAlphanumRe = regexp.MustCompile(`[^a-z0-9 ]`)

func normName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphanumRe.ReplaceAllString(s, " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}

func stripForMatch(s string) string {
	s = strings.TrimSpace(s)
	s = countryPrefixMatchRe.ReplaceAllString(s, "")
	s = qualityMarkerRe.ReplaceAllString(s, "")
	return normName(s)
}
