package realstonks

import (
	"log/slog"
	"net/http"
	"strings"

	"stockmail/internal/logger"
)

const (
	defaultBaseURL = "https://realstonks.p.rapidapi.com"
	defaultHost    = "realstonks.p.rapidapi.com"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=realstonks_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches single-symbol quotes from the RealStonks API on RapidAPI.
type Client struct {
	// baseURL is the base URL for the API; the symbol is appended as a path segment.
	baseURL string
	// host is sent as X-RapidAPI-Host.
	host string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	log    *slog.Logger
}

// ClientOption is a configuration option for the RealStonks client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHost sets the RapidAPI host header value.
func WithHost(host string) ClientOption {
	return func(c *Client) {
		c.host = host
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithLogger sets the logger for unavailable-quote warnings.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = logger.OrDiscard(l)
	}
}

// NewClient creates a new RealStonks client authenticated with key.
func NewClient(key string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		host:       defaultHost,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		log:        logger.Discard(),
	}
	if key != "" {
		c.header.Set("X-RapidAPI-Key", key)
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Name() string { return "RealStonks" }
