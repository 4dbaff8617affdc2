// Package semscholar provides a rate-limited, paginated client for the
// Semantic Scholar Academic Graph API that normalizes its records into
// the canonical domain model.
package semscholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Semantic Scholar API host.
	BaseURL = "https://api.semanticscholar.org"

	// apiPrefix is the path prefix of the graph API.
	apiPrefix = "/graph/v1/"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// Published quota: 100 requests per 5 minutes. The client blocks
	// before sending so successive requests are at least
	// RateWindow/RateWindowRequests apart.
	RateWindow         = 5 * time.Minute
	RateWindowRequests = 100

	// DefaultBlockSize is the page size requested per call.
	DefaultBlockSize = 100

	// DefaultLimit is the maximum total records yielded per query.
	DefaultLimit = 10000

	// SourceName is the registry name of this data source.
	SourceName = "semantic_scholar"

	// scraperTag marks provenance on produced papers.
	scraperTag = "ssch"
)

// Client is a rate-limited HTTP client for the Semantic Scholar graph
// API. Requests are issued strictly sequentially; the limiter blocks
// the sender until the inter-request delay has elapsed. A Client is
// safe to share: callers sharing one Client share its quota.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	log        zerolog.Logger
	observe    func(json.RawMessage)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithRateWindow sets the quota as maxRequests per window. The minimum
// inter-request delay becomes window/maxRequests.
func WithRateWindow(window time.Duration, maxRequests int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(window/time.Duration(maxRequests)), 1)
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithRecordObserver installs a hook invoked with each raw record
// before normalization. Useful for debug logging; the hook must not
// retain the slice past the call.
func WithRecordObserver(fn func(json.RawMessage)) ClientOption {
	return func(c *Client) {
		c.observe = fn
	}
}

// NewClient creates a Semantic Scholar client with the published quota.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(RateWindow/RateWindowRequests), 1),
		baseURL:    BaseURL,
		log:        zerolog.Nop(),
	}

	// Check for API key in environment
	if key := os.Getenv("S2_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get issues one rate-limited GET to /graph/v1/<path> and returns the
// raw response body. Transport failures wrap ErrNetwork and are not
// retried.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + apiPrefix + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	c.log.Debug().Str("path", path).Msg("issuing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrNetwork, err)
	}

	// Error responses carry a JSON body with an "error" field; the
	// page parser surfaces it as a QueryError, so the status code is
	// not inspected here.
	return body, nil
}
