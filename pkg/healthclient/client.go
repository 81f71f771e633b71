// Package healthclient fetches health reports from a running health API server.
package healthclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/NomadCrew/trcs2-health/types"
)

const (
	// DefaultTimeout bounds each request when no WithTimeout option is given.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// Client calls the four health endpoints. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Client for the server at baseURL, e.g. "http://localhost:4000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetHealth(ctx context.Context) (*types.HealthCheckResponse, error) {
	return c.get(ctx, "/health")
}

func (c *Client) GetLiveness(ctx context.Context) (*types.HealthCheckResponse, error) {
	return c.get(ctx, "/health/live")
}

func (c *Client) GetReadiness(ctx context.Context) (*types.HealthCheckResponse, error) {
	return c.get(ctx, "/health/ready")
}

func (c *Client) GetStartup(ctx context.Context) (*types.HealthCheckResponse, error) {
	return c.get(ctx, "/health/startup")
}

func (c *Client) get(ctx context.Context, path string) (*types.HealthCheckResponse, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &Error{Kind: NetworkError, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classify(ctx, reqCtx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &Error{Kind: HTTPError, StatusCode: resp.StatusCode}
	}

	var health types.HealthCheckResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&health); err != nil {
		if reqCtx.Err() != nil {
			return nil, c.classify(ctx, reqCtx, err)
		}
		return nil, &Error{Kind: DecodeError, Err: err}
	}
	if !health.Status.IsValid() {
		return nil, &Error{Kind: DecodeError, Err: fmt.Errorf("unknown status %q", health.Status)}
	}
	return &health, nil
}

// classify separates our own deadline from transport failures. Cancellation
// of the caller's context is reported as a network error wrapping ctx.Err().
func (c *Client) classify(parent, reqCtx context.Context, err error) error {
	if parent.Err() != nil {
		return &Error{Kind: NetworkError, Err: parent.Err()}
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: TimeoutError, Err: err, timeout: c.timeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: TimeoutError, Err: err, timeout: c.timeout}
	}
	return &Error{Kind: NetworkError, Err: err}
}
