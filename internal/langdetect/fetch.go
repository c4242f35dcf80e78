package langdetect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/channellang/channel-lang/internal/httpclient"
	"github.com/channellang/channel-lang/internal/metrics"
)

const (
	defaultFetchTimeout = 8 * time.Second
	defaultFetchRetries = 1
	defaultRetryDelay   = 300 * time.Millisecond
	defaultMaxBodyBytes = 2 << 20
	maxRedirectHops     = 5

	defaultUserAgent = "channel-lang-bot/1.0 (+https://github.com/channellang/channel-lang)"
)

// FetchConfig drives FetchSite. Zero values are replaced with defaults.
type FetchConfig struct {
	// Retries is the extra attempts per candidate URL (total attempts per
	// URL = Retries+1). Default 1.
	Retries int
	// Timeout bounds each individual attempt. Default 8s.
	Timeout time.Duration
	// RetryDelay is the fixed wait between retries of the same URL (no
	// backoff). Default 300ms.
	RetryDelay time.Duration
	// UserAgent identifies the bot. Default defaultUserAgent.
	UserAgent string
	// MaxBodyBytes caps how much HTML is read. Default 2 MiB.
	MaxBodyBytes int64
	// Client may be nil; a redirect-capped client derived from the shared
	// transport is built per call.
	Client *http.Client
}

func (c *FetchConfig) applyDefaults() {
	if c.Retries < 0 {
		c.Retries = 0
	} else if c.Retries == 0 {
		c.Retries = defaultFetchRetries
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultFetchTimeout
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.Client == nil {
		client := httpclient.WithTimeout(c.Timeout)
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirectHops {
				return fmt.Errorf("stopped after %d redirects", maxRedirectHops)
			}
			return nil
		}
		c.Client = client
	}
}

// ExhaustedError reports that every candidate URL and retry for a domain
// failed. It is the fetcher's only error kind: the orchestrator matches on
// it and degrades to pattern matching instead of surfacing a failure.
type ExhaustedError struct {
	Domain   string
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("fetch exhausted for %s after %d attempts: %v", e.Domain, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// CandidateURLs returns the URL variants tried for a domain, in priority
// order: https with www, bare https, then plain http with www.
func CandidateURLs(domain string) []string {
	return []string{
		"https://www." + domain,
		"https://" + domain,
		"http://www." + domain,
	}
}

// FetchSite retrieves the HTML for a domain, walking the candidate URL list
// with per-attempt timeouts. Any transport error or status ≥ 400 counts as a
// failed attempt; redirects are followed up to 5 hops. Returns the page HTML
// or an *ExhaustedError once every URL × retry combination has failed. No
// state is retained on failure.
func FetchSite(ctx context.Context, domain string, cfg FetchConfig) (string, error) {
	return fetchFromURLs(ctx, domain, CandidateURLs(domain), cfg)
}

// fetchFromURLs walks urls in order, trying each up to Retries+1 times.
func fetchFromURLs(ctx context.Context, domain string, urls []string, cfg FetchConfig) (string, error) {
	cfg.applyDefaults()

	attempts := 0
	var lastErr error
	for _, u := range urls {
		for try := 0; try <= cfg.Retries; try++ {
			if try > 0 {
				select {
				case <-ctx.Done():
					return "", &ExhaustedError{Domain: domain, Attempts: attempts, Last: ctx.Err()}
				case <-time.After(cfg.RetryDelay):
				}
			}
			attempts++
			metrics.FetchAttempts.Inc()
			body, err := fetchOnce(ctx, u, &cfg)
			if err == nil {
				return body, nil
			}
			lastErr = err
		}
	}
	metrics.FetchExhausted.Inc()
	return "", &ExhaustedError{Domain: domain, Attempts: attempts, Last: lastErr}
}

func fetchOnce(ctx context.Context, rawURL string, cfg *FetchConfig) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en;q=0.9,*;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, br")
	req.Header.Set("Connection", "keep-alive")

	release := httpclient.GlobalHostSem.Acquire(rawURL)
	defer release()

	resp, err := cfg.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("status %d from %s", resp.StatusCode, rawURL)
	}

	rc, err := httpclient.DecodeBody(resp)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, cfg.MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}
	return string(data), nil
}
