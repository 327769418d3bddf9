package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
	"github.com/pfrederiksen/cpbl-games/internal/matcher"
	"github.com/pfrederiksen/cpbl-games/internal/metrics"
	"github.com/pfrederiksen/cpbl-games/internal/schedule"
)

const (
	UserAgent = "Mozilla/5.0 (cpbl-one-minimal)"
	Timeout   = 20 * time.Second
)

// DefaultHeaders returns a fresh copy of the headers sent with every request
func DefaultHeaders() http.Header {
	return http.Header{"User-Agent": []string{UserAgent}}
}

// Scraper handles fetching and parsing CPBL pages
type Scraper struct {
	client  *http.Client
	baseURL string
	headers http.Header
	limiter *rate.Limiter
	retries int
	matcher *matcher.Matcher
	metrics *metrics.Recorder
	log     *logger.Logger
}

// Option configures a Scraper
type Option func(*Scraper)

// WithBaseURL points the scraper at another host (mirrors, tests)
func WithBaseURL(base string) Option {
	return func(s *Scraper) { s.baseURL = strings.TrimRight(base, "/") }
}

// WithHeaders replaces the request headers. The header value is copied.
func WithHeaders(h http.Header) Option {
	return func(s *Scraper) { s.headers = h.Clone() }
}

// WithUserAgent overrides only the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.headers.Set("User-Agent", ua)
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.client.Timeout = d }
}

// WithHTTPClient swaps the underlying client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithRateLimit caps outgoing requests per second; zero disables the cap
func WithRateLimit(perSecond float64) Option {
	return func(s *Scraper) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithRetries retries network-level failures up to n extra times.
// Failure statuses are never retried.
func WithRetries(n int) Option {
	return func(s *Scraper) { s.retries = n }
}

// WithMatcher replaces the extraction strategies
func WithMatcher(m *matcher.Matcher) Option {
	return func(s *Scraper) { s.matcher = m }
}

// WithMetrics records fetch outcomes on r
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Scraper) { s.metrics = r }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) { s.log = l }
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: game.BaseURL,
		headers: DefaultHeaders(),
		matcher: matcher.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the site root requests are built against
func (s *Scraper) BaseURL() string {
	return s.baseURL
}

// Get retrieves a page and returns its body decoded to UTF-8 text.
// Errors are *game.TransportError unless ctx ends first.
func (s *Scraper) Get(ctx context.Context, url string) (string, error) {
	body, _, err := s.getPage(ctx, url)
	return body, err
}

// getPage is Get plus the HTTP status of the last attempt
func (s *Scraper) getPage(ctx context.Context, url string) (string, int, error) {
	var (
		body   string
		status int
	)

	op := func() error {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		text, code, err := s.get(ctx, url)
		status = code
		if err != nil {
			if tErr, ok := game.AsTransportError(err); ok && tErr.IsStatus() {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			s.log.Debug("request failed", logger.Fields{"url": url, "error": err.Error()})
			return err
		}
		body = text
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(max(s.retries, 0))),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		return "", status, err
	}
	return body, status, nil
}

// get performs a single request. The status is zero when no response arrived.
func (s *Scraper) get(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, &game.TransportError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	for name, values := range s.headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, &game.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, &game.TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", resp.StatusCode, &game.TransportError{URL: url, Err: fmt.Errorf("decoding body: %w", err)}
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", resp.StatusCode, &game.TransportError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}

	return string(data), resp.StatusCode, nil
}

// FetchGame retrieves a box page and extracts its date and teams
func (s *Scraper) FetchGame(ctx context.Context, url string) (game.Record, error) {
	start := time.Now()
	rec, err := s.fetchGame(ctx, url)
	s.metrics.RecordFetch(time.Since(start), err)
	return rec, err
}

func (s *Scraper) fetchGame(ctx context.Context, url string) (game.Record, error) {
	body, err := s.Get(ctx, url)
	if err != nil {
		return game.Record{}, err
	}

	res, err := s.parseGame(strings.NewReader(body))
	if err != nil {
		return game.Record{}, fmt.Errorf("%s: %w", url, err)
	}

	s.log.Debug("matched game page", logger.Fields{"url": url, "strategy": res.Strategy})
	return res.Record, nil
}

// FetchKey fetches the box page for k
func (s *Scraper) FetchKey(ctx context.Context, k game.Key) (game.Record, error) {
	return s.FetchGame(ctx, game.BoxURL(s.baseURL, k))
}

// parseGame runs the matcher over an HTML document
func (s *Scraper) parseGame(r io.Reader) (matcher.Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return matcher.Result{}, fmt.Errorf("parsing HTML: %w", err)
	}

	res, ok := s.matcher.Match(doc)
	if !ok {
		return matcher.Result{}, game.ErrNotFoundOrChanged
	}
	return res, nil
}

// FetchSchedule retrieves the monthly schedule page. The returned Page
// carries the URL and status even when err is non-nil.
func (s *Scraper) FetchSchedule(ctx context.Context, year, month int, kind string) (schedule.Page, error) {
	url := game.ScheduleURL(s.baseURL, year, month, kind)
	body, status, err := s.getPage(ctx, url)
	page := schedule.Page{URL: url, Status: status, Body: body}
	if err != nil {
		return page, err
	}
	return page, nil
}
