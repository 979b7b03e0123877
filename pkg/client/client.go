// Package client provides the Twitter REST client: OAuth1-signed requests,
// outcome classification and the endpoint wrappers built on top of them.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/twitter-rest-client/pkg/logging"
	"github.com/Sternrassler/twitter-rest-client/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twitter_requests_total",
		Help: "Total API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "twitter_request_duration_seconds",
		Help:    "API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twitter_errors_total",
		Help: "Total API errors by kind",
	}, []string{"kind"})
)

// DefaultTimeout bounds a single call when neither the call nor the config
// sets one.
const DefaultTimeout = 10 * time.Second

// ErrRateLimitTrackingDisabled is returned by ObservedRateLimit when the
// client was built without Redis.
var ErrRateLimitTrackingDisabled = errors.New("rate limit tracking disabled")

// Client is the Twitter REST client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	credential Credential
	rateLimits *ratelimit.Tracker
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Credential signs every request. ConsumerKey and ConsumerSecret are required.
	Credential Credential

	// BaseURL is the API host (default DefaultBaseURL).
	BaseURL string

	// Timeout is the default per-call timeout.
	Timeout time.Duration

	// UserAgent header sent with every request.
	UserAgent string

	// Redis, if set, records the rate-limit headers of every response.
	// Requests are never delayed or refused based on them.
	Redis *redis.Client

	// HTTPClient, if set, supplies the transport beneath the OAuth1 signer.
	HTTPClient *http.Client
}

// DefaultConfig returns a configuration with the default host and timeout.
func DefaultConfig(cred Credential) Config {
	return Config{
		Credential: cred,
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		UserAgent:  "twitter-rest-client/0.1.0",
	}
}

// New creates a new client.
func New(cfg Config) (*Client, error) {
	if cfg.Credential.ConsumerKey == "" || cfg.Credential.ConsumerSecret == "" {
		return nil, fmt.Errorf("consumer key and secret are required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute (got %q)", cfg.BaseURL)
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	logger := logging.NewLogger("twitter-client")

	c := &Client{
		httpClient: cfg.Credential.httpClient(cfg.HTTPClient),
		baseURL:    base,
		credential: cfg.Credential,
		config:     cfg,
		logger:     logger,
	}
	if cfg.Redis != nil {
		c.rateLimits = ratelimit.NewTracker(cfg.Redis, logging.NewLogger("ratelimit-tracker"))
	}

	logger.Debug().
		Str("base_url", base.String()).
		Str("signing_mode", string(cfg.Credential.Mode())).
		Bool("rate_limit_tracking", c.rateLimits != nil).
		Msg("Client created")

	return c, nil
}

// SigningMode reports the OAuth1 variant the client signs with.
func (c *Client) SigningMode() SigningMode {
	return c.credential.Mode()
}

// Call describes a single request.
type Call struct {
	Method string

	// Path is either an API path resolved against the base URL or an
	// absolute URL.
	Path string

	// Params go into the query string for GET and DELETE and into a
	// form-encoded body otherwise.
	Params url.Values

	// Timeout overrides the configured timeout when > 0.
	Timeout time.Duration

	// Accept lists statuses treated as success in addition to 200.
	Accept []int
}

// Do performs one signed request. It returns the response for status 200
// (or a status in call.Accept) and an *Error otherwise. Nothing is retried.
func (c *Client) Do(ctx context.Context, call Call) (*Response, error) {
	target, err := c.resolve(call.Path)
	if err != nil {
		return nil, c.transportFailure(call.Path, err)
	}
	endpoint := ratelimit.ResourceFromPath(target.Path)

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	timeout := c.config.Timeout
	if call.Timeout > 0 {
		timeout = call.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := newRequest(ctx, call.Method, target, call.Params)
	if err != nil {
		return nil, c.transportFailure(endpoint, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportFailure(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportFailure(endpoint, fmt.Errorf("read response body: %w", err))
	}

	c.recordRateLimit(ctx, endpoint, resp.Header)
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusOK || slices.Contains(call.Accept, resp.StatusCode) {
		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}, nil
	}

	apiErr := newAPIError(endpoint, resp.StatusCode, body)
	errorsTotal.WithLabelValues(string(ErrorKindAPI)).Inc()
	c.logger.Warn().
		Str("endpoint", endpoint).
		Int("status", apiErr.StatusCode).
		Int("code", apiErr.Code).
		Str("message", apiErr.Message).
		Msg("API request error")

	return nil, apiErr
}

// Get performs a GET request against an API path.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.Do(ctx, Call{Method: http.MethodGet, Path: path, Params: params})
}

// Post performs a POST request against an API path.
func (c *Client) Post(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.Do(ctx, Call{Method: http.MethodPost, Path: path, Params: params})
}

// ObservedRateLimit returns the last rate-limit window recorded for an API
// path, e.g. PathFriendsIDs.
func (c *Client) ObservedRateLimit(ctx context.Context, path string) (*ratelimit.RateLimitState, error) {
	if c.rateLimits == nil {
		return nil, ErrRateLimitTrackingDisabled
	}
	return c.rateLimits.GetState(ctx, ratelimit.ResourceFromPath(path))
}

func (c *Client) resolve(path string) (*url.URL, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return url.Parse(path)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return url.Parse(c.baseURL.String() + path)
}

func newRequest(ctx context.Context, method string, target *url.URL, params url.Values) (*http.Request, error) {
	if method == "" {
		method = http.MethodGet
	}

	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		u := *target
		if len(params) > 0 {
			q := u.Query()
			for key, values := range params {
				q[key] = values
			}
			u.RawQuery = q.Encode()
		}
		return http.NewRequestWithContext(ctx, method, u.String(), nil)
	default:
		req, err := http.NewRequestWithContext(ctx, method, target.String(), strings.NewReader(params.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}
}

func (c *Client) transportFailure(endpoint string, err error) *Error {
	errorsTotal.WithLabelValues(string(ErrorKindTransport)).Inc()
	requestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
	c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
	return newTransportError(endpoint, err)
}

func (c *Client) recordRateLimit(ctx context.Context, endpoint string, headers http.Header) {
	if c.rateLimits == nil {
		return
	}
	if err := c.rateLimits.UpdateFromHeaders(ctx, endpoint, headers); err != nil {
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to record rate limit headers")
	}
}
