package langdetect

import (
	"context"
	"log"
	"time"

	"github.com/channellang/channel-lang/internal/metrics"
)

// CacheEntry is one persisted detection outcome, keyed by domain.
type CacheEntry struct {
	Language  string `json:"language"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// Cache is the injected domain-cache collaborator. Implementations must be
// safe under concurrent detections; writes are last-write-wins.
type Cache interface {
	Get(domain string) (CacheEntry, bool)
	Set(domain string, e CacheEntry)
}

// Provenance sources recorded on decisions and cache entries.
const (
	SourceNameExplicit = "name-explicit"
	SourceWeb          = "web"
	SourcePattern      = "pattern"
	cachedPrefix       = "cached-"
)

// Decision is the final per-channel outcome: an assigned language (possibly
// the "unknown" sentinel) and the strategy that produced it.
type Decision struct {
	Language string
	Source   string
}

// Config drives a Detector.
type Config struct {
	// Cache may be nil to disable caching entirely.
	Cache Cache

	// Fetch configures the site fetcher.
	Fetch FetchConfig

	// FetchFn overrides site fetching; used by tests and by callers that
	// already hold the HTML. Nil means FetchSite.
	FetchFn func(ctx context.Context, domain string) (string, error)
}

// Detector runs the full per-channel strategy chain. Safe for concurrent
// use: the only shared mutable state is the injected Cache.
type Detector struct {
	cfg Config
}

func New(cfg Config) *Detector {
	if cfg.FetchFn == nil {
		fetch := cfg.Fetch
		cfg.FetchFn = func(ctx context.Context, domain string) (string, error) {
			return FetchSite(ctx, domain, fetch)
		}
	}
	return &Detector{cfg: cfg}
}

// Detect resolves the language for a channel by name and tvg-id. It never
// returns an error: every internal failure degrades to the next strategy,
// and the pattern fallback is total.
func (d *Detector) Detect(ctx context.Context, name, tvgID string) Decision {
	return d.DetectWithDomain(ctx, name, ExtractDomain(tvgID))
}

// DetectWithDomain is Detect with the domain already resolved (possibly "").
// Strategy order:
//
//  1. Explicit language name in the channel name. Checked before the cache
//     on purpose: the operator-curated name is ground truth, so a renamed
//     channel overrides a stale cached web verdict.
//  2. Cache hit for the domain (source gains a "cached-" prefix).
//  3. Web detection: fetch the site and resolve its HTML. Fetch exhaustion
//     and unusable pages fall through silently.
//  4. Brand-pattern fallback; always yields a value, worst case "unknown".
func (d *Detector) DetectWithDomain(ctx context.Context, name, domain string) Decision {
	if code := ExplicitNameLanguage(name); code != "" {
		d.cacheSet(domain, code, SourceNameExplicit)
		return Decision{Language: code, Source: SourceNameExplicit}
	}

	if domain != "" && d.cfg.Cache != nil {
		if e, ok := d.cfg.Cache.Get(domain); ok {
			metrics.CacheHits.Inc()
			return Decision{Language: e.Language, Source: cachedPrefix + e.Source}
		}
	}

	if domain != "" {
		if code, ok := d.detectWeb(ctx, name, domain); ok {
			d.cacheSet(domain, code, SourceWeb)
			return Decision{Language: code, Source: SourceWeb}
		}
	}

	code := PatternLanguage(name)
	d.cacheSet(domain, code, SourcePattern)
	return Decision{Language: code, Source: SourcePattern}
}

// detectWeb fetches the channel's website and resolves its HTML. Returns
// ok=false on any failure or an inconclusive page; nothing propagates.
func (d *Detector) detectWeb(ctx context.Context, name, domain string) (string, bool) {
	html, err := d.cfg.FetchFn(ctx, domain)
	if err != nil {
		log.Printf("detect: %s: %v (falling back to pattern)", name, err)
		return "", false
	}
	decision := ResolvePage(html, false)
	if decision.Body.Method != "" {
		metrics.BodyMethods.WithLabelValues(decision.Body.Method).Inc()
	}
	if decision.Language == "" || decision.Language == Unknown {
		return "", false
	}
	return decision.Language, true
}

func (d *Detector) cacheSet(domain, language, source string) {
	if domain == "" || d.cfg.Cache == nil {
		return
	}
	d.cfg.Cache.Set(domain, CacheEntry{
		Language:  language,
		Source:    source,
		Timestamp: time.Now().UnixMilli(),
	})
	metrics.CacheWrites.Inc()
}
