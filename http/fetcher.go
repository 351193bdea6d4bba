// Package http provides an HTTP-based implementation of
// threadbook.Fetcher that retrieves a thread's print view, which
// renders every post on a single page given a large enough page-size
// parameter.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/threadbook/threadbook"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultPageSize is the posts-per-page parameter sent with the print
// view request. Large enough that any human-scale thread fits on one
// page.
const DefaultPageSize = 10000

// userAgent is a browser-like identity; the forum blocks obvious bots.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Ensure Fetcher implements threadbook.Fetcher at compile time.
var _ threadbook.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves thread markup over HTTP. The base URL is
// caller-supplied configuration; there is no default forum host.
type Fetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
	baseURL  string
	timeout  time.Duration
	pageSize int
	attempts uint
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests. Defaults to
// DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithPageSize sets the posts-per-page parameter of the print view
// request. Defaults to DefaultPageSize.
func WithPageSize(n int) Option {
	return func(f *Fetcher) { f.pageSize = n }
}

// WithRequestsPerSecond paces requests with a token bucket. Unpaced by
// default.
func WithRequestsPerSecond(rps float64) Option {
	return func(f *Fetcher) { f.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithLogger sets the structured logger. Discards logs by default.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// WithAttempts sets the maximum number of fetch attempts, including
// the first. Defaults to 4.
func WithAttempts(n uint) Option {
	return func(f *Fetcher) { f.attempts = n }
}

// NewFetcher creates a Fetcher for the forum at baseURL (scheme and
// host, e.g. "https://forums.example.com").
func NewFetcher(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:  baseURL,
		timeout:  DefaultFetchTimeout,
		pageSize: DefaultPageSize,
		attempts: 4,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// URL returns the print-view URL for a thread.
func (f *Fetcher) URL(threadID int) string {
	return fmt.Sprintf("%s/printthread.php?t=%d&pp=%d", f.baseURL, threadID, f.pageSize)
}

// FetchThread retrieves the full rendered markup for the thread.
// Transient failures are retried with backoff; client errors (4xx) are
// not, since retrying a missing or private thread cannot succeed.
// Failures surface as EUNAVAILABLE.
func (f *Fetcher) FetchThread(ctx context.Context, threadID int) (string, error) {
	pageURL := f.URL(threadID)

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	var body string
	err := retry.Do(
		func() error {
			start := time.Now()
			markup, err := f.fetchOnce(ctx, pageURL)
			if err != nil {
				f.logger.Warn("thread fetch failed",
					"url", pageURL,
					"duration_ms", time.Since(start).Milliseconds(),
					"error", err)
				return err
			}
			body = markup
			return nil
		},
		retry.Attempts(f.attempts),
		retry.Delay(time.Second),
		retry.MaxDelay(time.Minute),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.status >= http.StatusInternalServerError
			}
			return true
		}),
	)
	if err != nil {
		return "", threadbook.Errorf(threadbook.EUNAVAILABLE, "failed to fetch thread %d: %v", threadID, err)
	}

	f.logger.Info("thread fetched", "url", pageURL, "bytes", len(body))
	return body, nil
}

// Close releases resources. A no-op for the HTTP client.
func (f *Fetcher) Close() error {
	return nil
}

type statusError struct {
	status int
	url    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.status, e.url)
}

func (f *Fetcher) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &statusError{status: resp.StatusCode, url: pageURL}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
