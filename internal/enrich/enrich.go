// Package enrich runs language detection over a whole channel dataset:
// bounded worker fan-out inside each batch, a politeness delay between
// batches, and a global rate limit on detections that may hit the network.
package enrich

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/channellang/channel-lang/internal/dataset"
	"github.com/channellang/channel-lang/internal/iptvorg"
	"github.com/channellang/channel-lang/internal/langdetect"
	"github.com/channellang/channel-lang/internal/metrics"
)

// Options tune a run. Zero values get sensible defaults.
type Options struct {
	Workers       int           // concurrent detections per batch (default 4)
	BatchSize     int           // channels per batch (default 10)
	BatchDelay    time.Duration // pause between batches (default 2s)
	RatePerSecond float64       // global detection rate cap (default 2)
}

func (o *Options) applyDefaults() {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 10
	}
	if o.BatchDelay <= 0 {
		o.BatchDelay = 2 * time.Second
	}
	if o.RatePerSecond <= 0 {
		o.RatePerSecond = 2
	}
}

// Stats summarises one run.
type Stats struct {
	Total     int            // channels in the dataset
	Processed int            // channels that went through detection
	Skipped   int            // channels that already had a language
	Unknown   int            // processed channels left at "unknown"
	BySource  map[string]int // processed channels by provenance source
	ByLang    map[string]int // processed channels by assigned language
	Duration  time.Duration
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "processed %d/%d (skipped %d, unknown %d) in %s",
		s.Processed, s.Total, s.Skipped, s.Unknown, s.Duration.Round(time.Millisecond))
	if len(s.ByLang) > 0 {
		codes := make([]string, 0, len(s.ByLang))
		for code := range s.ByLang {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		parts := make([]string, 0, len(codes))
		for _, code := range codes {
			parts = append(parts, fmt.Sprintf("%s=%d", code, s.ByLang[code]))
		}
		b.WriteString(": " + strings.Join(parts, " "))
	}
	return b.String()
}

// Runner drives enrichment. The iptv-org DB is optional: when present it
// supplies a fallback domain (and declared language) for channels whose
// tvg-id yields none.
type Runner struct {
	det     *langdetect.Detector
	db      *iptvorg.DB
	opts    Options
	limiter *rate.Limiter
}

func New(det *langdetect.Detector, db *iptvorg.DB, opts Options) *Runner {
	opts.applyDefaults()
	return &Runner{
		det:     det,
		db:      db,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1),
	}
}

// Run detects languages for every channel that still needs one, mutating the
// slice in place. Idempotent: channels with a language are skipped, so a
// partially-annotated dataset can be resumed. Stops early only when ctx is
// cancelled; per-channel outcomes are never errors.
func (r *Runner) Run(ctx context.Context, channels []dataset.Channel) (stats Stats, err error) {
	started := time.Now()
	stats = Stats{
		Total:    len(channels),
		BySource: make(map[string]int),
		ByLang:   make(map[string]int),
	}
	var mu sync.Mutex
	defer func() { stats.Duration = time.Since(started) }()

	for start := 0; start < len(channels); start += r.opts.BatchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(r.opts.BatchDelay):
			}
		}
		end := start + r.opts.BatchSize
		if end > len(channels) {
			end = len(channels)
		}

		sem := make(chan struct{}, r.opts.Workers)
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			if !channels[i].NeedsLanguage() {
				stats.Skipped++
				continue
			}
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					return
				}
				defer func() { <-sem }()
				if err := r.limiter.Wait(ctx); err != nil {
					return
				}

				decision := r.detect(ctx, channels[i])
				channels[i].Language = decision.Language
				channels[i].LanguageSource = decision.Source
				metrics.DetectionsTotal.WithLabelValues(decision.Source).Inc()

				mu.Lock()
				stats.Processed++
				stats.BySource[decision.Source]++
				stats.ByLang[decision.Language]++
				if decision.Language == langdetect.Unknown {
					stats.Unknown++
				}
				mu.Unlock()
			}(i)
		}
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return stats, err
		}
		log.Printf("enrich: batch %d-%d done: %s", start+1, end, stats)
	}
	return stats, nil
}

// detect resolves one channel, using the iptv-org DB to fill in a missing
// domain and as a last resort before settling for "unknown".
func (r *Runner) detect(ctx context.Context, c dataset.Channel) langdetect.Decision {
	domain := langdetect.ExtractDomain(c.TVGID)
	if domain == "" && r.db != nil {
		domain = r.db.WebsiteDomain(c.TVGID, c.Name)
	}
	decision := r.det.DetectWithDomain(ctx, c.Name, domain)
	if decision.Language == langdetect.Unknown && r.db != nil {
		if code := r.db.KnownLanguage(c.TVGID, c.Name); code != "" {
			return langdetect.Decision{Language: code, Source: "iptvorg"}
		}
	}
	return decision
}
