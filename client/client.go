// Package client provides the HTTP transport used to probe repositories.
//
// A Client issues GET requests with retry on rate limiting and server errors,
// resolves hosts through a shared DNS cache, and isolates failing registry hosts
// behind per-host circuit breakers.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cenk/backoff"
	"github.com/rs/dnscache"
)

const defaultUserAgent = "sbtplugin"

// Client is an HTTP client with retry logic for repository requests.
// It is safe for concurrent use.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	MaxRetries int
	BaseDelay  time.Duration

	breakers *breakers
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.HTTPClient.Timeout = d
	}
}

// WithMaxRetries sets the maximum number of retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.MaxRetries = n
	}
}

// WithBaseDelay sets the first retry interval.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) {
		c.BaseDelay = d
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// WithBreakerThreshold sets how many consecutive failures trip a host's breaker.
func WithBreakerThreshold(n int) Option {
	return func(c *Client) {
		c.breakers = newBreakers(int64(n))
	}
}

var (
	resolverOnce sync.Once
	resolver     *dnscache.Resolver
)

func sharedResolver() *dnscache.Resolver {
	resolverOnce.Do(func() {
		resolver = &dnscache.Resolver{}
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				resolver.Refresh(true)
			}
		}()
	})
	return resolver
}

func newTransport() *http.Transport {
	r := sharedResolver()
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := r.LookupHost(ctx, host)
			if err != nil {
				return nil, err
			}
			for _, ip := range ips {
				conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					return conn, nil
				}
			}
			return nil, fmt.Errorf("failed to dial any resolved IP for %s", host)
		},
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
// - Breaker trips after 5 consecutive failures per host
func DefaultClient() *Client {
	return NewClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		HTTPClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: newTransport(),
		},
		UserAgent:  defaultUserAgent,
		MaxRetries: 5,
		BaseDelay:  500 * time.Millisecond,
		breakers:   newBreakers(defaultBreakerThreshold),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithUserAgent returns a copy of the client sending the given User-Agent.
// The copy shares the underlying HTTP client and circuit breakers.
func (c *Client) WithUserAgent(ua string) *Client {
	cp := *c
	cp.UserAgent = ua
	return &cp
}

// BreakerStates returns the state of each registry host's breaker, "open" or "closed".
func (c *Client) BreakerStates() map[string]string {
	return c.breakers.states()
}

// GetBody performs a GET request and returns the response body.
//
// A 404 yields an *HTTPError matching ErrNotFound and does not count against
// the host's breaker. Rate limiting and 5xx responses are retried; once
// retries are exhausted they, like network failures, count as a breaker failure.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	host := hostOf(url)
	breaker := c.breakers.get(host)
	if !breaker.Ready() {
		return nil, fmt.Errorf("%w for %s", ErrCircuitOpen, host)
	}

	var body []byte
	op := func() error {
		b, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	err := backoff.Retry(op, c.newBackOff(ctx))
	switch {
	case err == nil:
		breaker.Success()
		return body, nil
	case errors.Is(err, ErrNotFound):
		breaker.Success()
		return nil, err
	case ctx.Err() != nil:
		return nil, ctx.Err()
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode < 500 {
		// The host answered; it is reachable.
		breaker.Success()
		return nil, err
	}
	breaker.Fail()
	return nil, err
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.BaseDelay
	exp.RandomizationFactor = 0.1
	exp.Multiplier = 2.0
	exp.MaxElapsedTime = 0
	exp.Reset()

	retries := c.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// get performs a single request. Errors that must not be retried are wrapped
// in backoff.Permanent.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", url, err)
		}
		return body, nil

	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return nil, backoff.Permanent(&HTTPError{StatusCode: resp.StatusCode, URL: url})

	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return nil, &RateLimitError{URL: url, RetryAfter: retryAfter}

	case resp.StatusCode >= 500:
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, backoff.Permanent(&HTTPError{StatusCode: resp.StatusCode, URL: url, Body: string(body)})
	}
}
