package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/telemetry/logger"
	"github.com/yndnr/tunevault-go/internal/telemetry/metric"
)

// CredentialCookie is the cookie name carrying the long-lived credential.
const CredentialCookie = "arl"

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "tunevault-cli/1.0"

// Config configures a Client.
type Config struct {
	// Credential is the optional long-lived account credential.
	Credential string

	// Timeout bounds each request, including reading the body.
	Timeout time.Duration

	// RateLimit is the sustained request rate per second; zero disables pacing.
	RateLimit float64

	// Burst is the token bucket size when RateLimit is set.
	Burst int

	// UserAgent overrides DefaultUserAgent.
	UserAgent string

	// TLS replaces the default client TLS settings when non-nil.
	TLS *tls.Config
}

// Request describes one HTTP exchange.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Header http.Header

	// Body is encoded as JSON when non-nil.
	Body any

	// Kind labels the request in metrics (e.g. "gateway", "license", "media").
	Kind string
}

// Client performs HTTP requests for the pipeline.
type Client struct {
	client     *http.Client
	limiter    *rate.Limiter
	credential string
	userAgent  string
	metrics    *metric.Registry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithMetrics records request outcomes in reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(c *Client) {
		c.metrics = reg
	}
}

// New creates a Client.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		client:     &http.Client{Timeout: cfg.Timeout},
		credential: cfg.Credential,
		userAgent:  cfg.UserAgent,
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if cfg.TLS != nil {
		rt := http.DefaultTransport.(*http.Transport).Clone()
		rt.TLSClientConfig = cfg.TLS
		c.client.Transport = rt
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredential reports whether a long-lived credential is configured.
func (c *Client) HasCredential() bool {
	return c.credential != ""
}

// Do performs the request and returns the response body.
// Responses with status >= 400 are failures.
func (c *Client) Do(ctx context.Context, req *Request) ([]byte, error) {
	start := time.Now()
	body, status, err := c.do(ctx, req)

	result := "ok"
	if err != nil {
		result = "error"
	}
	c.metrics.ObserveTransport(req.Kind, result)

	log := logger.L(ctx).With(
		"kind", req.Kind,
		"method", req.method(),
		"host", hostOf(req.URL),
		"status", status,
		"duration", time.Since(start))
	if err != nil {
		log.Debug("http request failed", "error", err)
		return nil, err
	}

	log.Debug("http request", "bytes", len(body))
	return body, nil
}

// DoJSON performs the request and decodes the JSON response into target.
// A body that is not valid JSON is a transport failure.
func (c *Client) DoJSON(ctx context.Context, req *Request, target any) error {
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	body, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return domain.ErrTransport.WithDetailsf("decode %s response", hostOf(req.URL)).WithCause(err)
	}
	return nil
}

// Fetch downloads the resource at rawURL.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: rawURL, Kind: "media"})
}

func (c *Client) do(ctx context.Context, req *Request) ([]byte, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, domain.ErrTransport.WithDetails("rate limiter").WithCause(err)
		}
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, 0, domain.ErrTransport.WithDetailsf("%s %s", req.method(), hostOf(req.URL)).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, domain.ErrTransport.WithDetails("read body").WithCause(err)
	}

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, domain.ErrTransport.WithDetailsf(
			"%s %s: request failed with status %d", req.method(), hostOf(req.URL), resp.StatusCode)
	}

	return body, resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, req *Request) (*http.Request, error) {
	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, domain.ErrTransport.WithDetails("parse url").WithCause(err)
	}
	if len(req.Query) > 0 {
		q := target.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, domain.ErrTransport.WithDetails("marshal body").WithCause(err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method(), target.String(), bodyReader)
	if err != nil {
		return nil, domain.ErrTransport.WithDetails("create request").WithCause(err)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	c.addHeaders(httpReq, req.Body != nil)
	return httpReq, nil
}

// addHeaders adds the identity cookie and common headers.
func (c *Client) addHeaders(req *http.Request, hasBody bool) {
	if c.credential != "" && req.Header.Get("Cookie") == "" {
		req.AddCookie(&http.Cookie{Name: CredentialCookie, Value: c.credential})
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if hasBody && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
}

func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// hostOf returns the host of rawURL for logs and errors. Query strings
// carry tokens and are never logged.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "invalid-url"
	}
	return u.Host
}
