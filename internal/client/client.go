// Package client sends compiled queries to the reporting API.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/payquery/payquery/internal/debug"
	"github.com/payquery/payquery/internal/query"
	"github.com/payquery/payquery/internal/records"
	"github.com/payquery/payquery/internal/telemetry"
)

const (
	// TokenHeader carries the API token on every request.
	TokenHeader = "requestToken"

	defaultTimeout    = 30 * time.Second
	defaultRetries    = 3
	defaultMaxElapsed = 30 * time.Second
	maxErrorBody      = 512
)

// Client provides HTTP access to the query endpoints.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	UserAgent  string

	retries     int
	newBackOff  func() backoff.BackOff
	instruments *telemetry.Instruments
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithTimeout bounds each attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTPClient.Timeout = d
		}
	}
}

// WithRetries sets how many times a transient failure is retried.
// Zero disables retries.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithBackOff sets the delay policy between attempts. BackOff
// implementations are stateful, so f must return a fresh instance.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = f }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

// New creates a client for the API at baseURL.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		UserAgent:  "payquery",
		retries:    defaultRetries,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.MaxElapsedTime = defaultMaxElapsed
			return bo
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.instruments = telemetry.NewInstruments("github.com/payquery/payquery/internal/client")
	return c
}

// Response is a successful API reply.
type Response struct {
	URL        string
	Status     string // e.g. "200 OK"
	StatusCode int
	Body       []byte
	Attempts   int
}

// Records returns the Records array of the response envelope.
func (r *Response) Records() ([]any, error) {
	return records.Parse(r.Body)
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Status     string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	if body == "" {
		return fmt.Sprintf("API returned %s", e.Status)
	}
	return fmt.Sprintf("API returned %s: %s", e.Status, body)
}

// Temporary reports whether the request is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// URL returns the full request URL for route and params.
func (c *Client) URL(route []string, params []query.Param) string {
	u := query.BuildURL(c.BaseURL, route)
	if qs := query.EncodeParams(params); qs != "" {
		u += "?" + qs
	}
	return u
}

// Query sends a GET for route with params. Transport errors, 5xx and 429
// are retried with exponential backoff; other statuses fail at once.
func (c *Client) Query(ctx context.Context, route []string, params []query.Param) (*Response, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("API token not configured")
	}
	apiURL := c.URL(route, params)

	attrs := []attribute.KeyValue{attribute.String("pq.route", strings.Join(route, "/"))}
	ctx, span, start := c.instruments.Start(ctx, "pq.query", attrs...)

	var resp *Response
	attempts := 0
	op := func() error {
		attempts++
		r, err := c.do(ctx, apiURL)
		if err == nil {
			resp = r
			return nil
		}
		var se *StatusError
		if errors.As(err, &se) && !se.Temporary() {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		debug.Logf("client: attempt %d failed (%v), retrying in %v\n", attempts, err, wait)
		c.instruments.Retry(ctx, span, attempts, err)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.retries)), ctx)
	err := backoff.RetryNotify(op, bo, notify)

	done := []attribute.KeyValue{attribute.Int("pq.attempts", attempts)}
	if resp != nil {
		resp.Attempts = attempts
		done = append(done, attribute.Int("http.response.status_code", resp.StatusCode))
	} else {
		var se *StatusError
		if errors.As(err, &se) {
			done = append(done, attribute.Int("http.response.status_code", se.StatusCode))
		}
	}
	c.instruments.Done(ctx, span, start, err, append(attrs, done...)...)

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, apiURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set(TokenHeader, c.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	debug.Logf("client: GET %s\n", apiURL)
	t0 := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	debug.Timef(t0, fmt.Sprintf("client: %s (%d bytes)", resp.Status, len(body)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.Status, StatusCode: resp.StatusCode, Body: body}
	}
	return &Response{
		URL:        apiURL,
		Status:     resp.Status,
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
