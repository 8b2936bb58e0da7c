package bybit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aqleung/trade-ledger/internal/auth"
	"github.com/aqleung/trade-ledger/internal/ratelimit"
)

// DefaultBaseURL is the production Bybit REST endpoint.
const DefaultBaseURL = "https://api.bybit.com"

// Client provides access to the Bybit V5 REST API.
type Client struct {
	baseURL    string
	creds      *auth.Credentials
	httpClient *http.Client
	logger     *slog.Logger
	governor   *ratelimit.Governor

	recvWindow   time.Duration
	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client.
func NewClient(baseURL string, creds *auth.Credentials, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		governor:     ratelimit.New(120 * time.Millisecond),
		recvWindow:   5 * time.Second,
		maxRetries:   3,
		retryBackoff: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithGovernor sets the rate governor pacing requests.
func WithGovernor(g *ratelimit.Governor) ClientOption {
	return func(c *Client) {
		c.governor = g
	}
}
