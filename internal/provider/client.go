// Package provider contains the HTTP clients for the upstream data sources
// (geocoding, weather, business search, movie search, event search, trail
// search) and the pure mapping functions that turn their payloads into domain
// rows. Every outbound call goes through a shared resilient client: bounded
// retries with exponential backoff behind a per-provider circuit breaker.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/cityscout/backend/internal/domain"
)

// Backoff controls retry behaviour for upstream calls.
type Backoff struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultBackoff is used by the production wiring: three attempts total,
// starting at 200ms between them.
var DefaultBackoff = Backoff{
	MaxRetries:      2,
	InitialInterval: 200 * time.Millisecond,
	MaxInterval:     2 * time.Second,
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// Client wraps an http.Client with retries and a circuit breaker.
// Construct one per provider so a failing upstream only opens its own breaker.
type Client struct {
	http    *http.Client
	backoff Backoff
	breaker *gobreaker.CircuitBreaker
}

// NewClient builds a resilient client named after its provider.
// The http.Client should carry a timeout; a hung upstream then fails the
// request instead of hanging it.
func NewClient(name string, httpClient *http.Client, backoff Backoff) *Client {
	return &Client{
		http:    httpClient,
		backoff: backoff,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: name}),
	}
}

// getJSON issues a GET for url, retrying transient failures, and decodes the
// response body into out. Any terminal failure — exhausted retries, open
// breaker, non-2xx status, undecodable body — is reported as
// domain.ErrUpstream.
func (c *Client) getJSON(ctx context.Context, url string, header http.Header, out any) error {
	resp, err := c.do(ctx, url, header)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	return nil
}

// do executes the request with bounded exponential backoff behind the circuit
// breaker. Rate limits and 5xx responses are retried; other non-2xx statuses
// fail immediately inside the breaker so repeated client errors still trip it.
func (c *Client) do(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		result, err := c.breaker.Execute(func() (any, error) {
			resp, execErr := c.http.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			return result.(*http.Response), nil
		}

		// An open breaker means the upstream is already known-bad; don't wait
		// out the backoff schedule.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		// A definitive client error (4xx other than 429) will not change on
		// retry.
		if errors.Is(err, errUnexpected) {
			return nil, err
		}

		lastErr = err
		if attempt >= c.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := c.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.MaxInterval > 0 && delay > c.backoff.MaxInterval {
			delay = c.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
