// Package metrics exposes prometheus counters for the enrichment pipeline.
// Counters live in the default registry; Serve starts an optional /metrics
// listener for long-running enrichment passes.
package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DetectionsTotal counts finished detections by provenance source
	// (name-explicit, cached-*, web, pattern).
	DetectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "channel_lang_detections_total",
		Help: "Completed channel language detections by provenance source.",
	}, []string{"source"})

	// BodyMethods counts body-text analyzer outcomes by method.
	BodyMethods = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "channel_lang_body_methods_total",
		Help: "Body-text analysis outcomes by method.",
	}, []string{"method"})

	FetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "channel_lang_fetch_attempts_total",
		Help: "Outbound site fetch attempts (per URL variant per try).",
	})

	FetchExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "channel_lang_fetch_exhausted_total",
		Help: "Site fetches that failed after every URL variant and retry.",
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "channel_lang_cache_hits_total",
		Help: "Detections answered from the domain cache.",
	})

	CacheWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "channel_lang_cache_writes_total",
		Help: "Domain cache entries written.",
	})
)

// Serve exposes /metrics on addr in a background goroutine. No-op when addr
// is empty. Listen errors are logged, never fatal — metrics are best-effort.
func Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("metrics: listener on %s failed: %v", addr, err)
		}
	}()
}
