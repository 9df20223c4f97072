// Package circuitapi is the REST client for the circuit backend (/api).
package circuitapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	apperrors "github.com/mcsa-hvr/circuit1021/internal/errors"
	"github.com/mcsa-hvr/circuit1021/internal/observability/metrics"
	"github.com/mcsa-hvr/circuit1021/internal/observability/statsd"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

const (
	// DefaultBaseURL matches the backend's local development address.
	DefaultBaseURL = "http://localhost:8001/api"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
	userAgent      = "circuit1021"
)

var _ ports.CircuitAPI = (*Client)(nil)

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport is the underlying round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
	// Credentials supplies the bearer token. Requests go out without an
	// Authorization header while it yields no valid token.
	Credentials oauth2.TokenSource
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// Client calls the circuit backend. A Client is safe for concurrent use;
// WithCredentials derives per-session clients that share the transport.
type Client struct {
	base      *url.URL
	timeout   time.Duration
	transport http.RoundTripper
	http      *http.Client
	metrics   statsd.Sink
	logger    *slog.Logger
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http or https, got %q", raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("api base url has no host: %q", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		base:      base,
		timeout:   timeout,
		transport: transport,
		metrics:   cfg.Metrics,
		logger:    logger,
	}
	c.http = c.newHTTPClient(cfg.Credentials)
	return c, nil
}

// WithCredentials returns a shallow copy whose requests carry the bearer token
// from src. Each copy gets its own cookie jar.
func (c *Client) WithCredentials(src oauth2.TokenSource) *Client {
	cp := *c
	cp.http = c.newHTTPClient(src)
	return &cp
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) newHTTPClient(src oauth2.TokenSource) *http.Client {
	// cookiejar.New only fails on a nil-safe options value it never rejects.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	var rt http.RoundTripper = c.transport
	if src != nil {
		rt = &bearerTransport{base: c.transport, src: src}
	}
	return &http.Client{Transport: rt, Jar: jar, Timeout: c.timeout}
}

// bearerTransport sets "Authorization: Bearer <token>" when src holds a valid token.
type bearerTransport struct {
	base http.RoundTripper
	src  oauth2.TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := t.src.Token()
	if err != nil || !tok.Valid() {
		return t.base.RoundTrip(req)
	}
	r2 := req.Clone(req.Context())
	tok.SetAuthHeader(r2)
	return t.base.RoundTrip(r2)
}

// call describes one request. Route is the low-cardinality endpoint name used for metrics.
type call struct {
	method string
	route  string
	path   string
	query  url.Values
	body   io.Reader
	ctype  string
}

func (c *Client) endpoint(p string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + p
	u.RawPath = ""
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func jsonCall(method, route, p string, payload any) (call, error) {
	cl := call{method: method, route: route, path: p}
	if payload == nil {
		return cl, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return cl, fmt.Errorf("encode %s request: %w", route, err)
	}
	cl.body = bytes.NewReader(data)
	cl.ctype = "application/json"
	return cl, nil
}

// do sends the request and decodes a 2xx JSON body into out (when non-nil).
// Non-2xx responses become *apperrors.AppError carrying the backend detail.
func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		metrics.EmitAPICall(c.metrics, metrics.APICallMetric{
			Endpoint: cl.route,
			Method:   cl.method,
			Status:   status,
			Duration: time.Since(start),
			Err:      err,
		})
	}()

	req, err := http.NewRequestWithContext(ctx, cl.method, c.endpoint(cl.path, cl.query), cl.body)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", cl.method, cl.route, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if cl.ctype != "" {
		req.Header.Set("Content-Type", cl.ctype)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", cl.method, cl.route, apperrors.MapTransportError(err))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close api response body", "error", cerr)
		}
	}()
	status = resp.StatusCode

	if status < 200 || status > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		appErr := apperrors.FromStatus(status, extractDetail(body))
		c.logger.DebugContext(ctx, "api request rejected",
			"method", cl.method, "route", cl.route, "status", status, "detail", appErr.Message)
		return fmt.Errorf("%s %s: %w", cl.method, cl.route, appErr)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).DecodeContext(ctx, out); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", cl.method, cl.route, apperrors.MapTransportError(err))
		}
		return fmt.Errorf("%s %s: %w", cl.method, cl.route,
			apperrors.Wrap(err, apperrors.ErrCodeInternal, "Unexpected response from the circuit service"))
	}
	return nil
}
