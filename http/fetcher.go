// Package http provides the outbound HTTP transport used by probes, with
// optional SOCKS5 proxying and per-host rate limiting.
package http

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/festin"
	"golang.org/x/net/proxy"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// DefaultProxyAddr is the SOCKS5 address of a local Tor daemon.
const DefaultProxyAddr = "127.0.0.1:9050"

// Ensure Fetcher implements festin.Fetcher at compile time.
var _ festin.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves URLs over HTTP(S). TLS certificates are not verified:
// misconfigured storage endpoints are still worth listing.
type Fetcher struct {
	client          *http.Client
	timeout         time.Duration
	proxyAddr       string
	followRedirects bool
	limiter         festin.DomainLimiter
	maxBodySize     int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithProxy routes every connection through the SOCKS5 proxy at addr.
func WithProxy(addr string) Option {
	return func(f *Fetcher) {
		f.proxyAddr = addr
	}
}

// WithFollowRedirects makes the fetcher follow redirects. By default
// redirect responses are returned as they are.
func WithFollowRedirects() Option {
	return func(f *Fetcher) {
		f.followRedirects = true
	}
}

// WithRateLimiter makes every request wait for its host's turn.
func WithRateLimiter(l festin.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithMaxBodySize caps how many body bytes are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new Fetcher. It fails only if the proxy
// configuration cannot be used.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // listing misconfigured endpoints is the point
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
	}
	if f.proxyAddr != "" {
		dialer, err := proxy.SOCKS5("tcp", f.proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, festin.Errorf(festin.EINVALID, "invalid proxy %q: %v", f.proxyAddr, err)
		}
		cd, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, festin.Errorf(festin.EINVALID, "proxy %q does not support contexts", f.proxyAddr)
		}
		transport.DialContext = cd.DialContext
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}
	if !f.followRedirects {
		f.client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return f, nil
}

// Fetch performs a GET request. Any status is returned as a response;
// only transport failures are errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*festin.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, festin.Errorf(festin.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", "festin")

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, req.URL.Host); err != nil {
			return nil, classify(ctx, err)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, classify(ctx, err)
	}

	return &festin.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// CheckConnectivity verifies that a TCP connection to addr can be opened.
// It is used at startup to fail fast when the proxy is down.
func CheckConnectivity(ctx context.Context, addr string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return festin.Errorf(festin.ETRANSPORT, "cannot reach %s: %v", addr, err)
	}
	return conn.Close()
}

// classify maps a transport failure onto ETIMEOUT or ETRANSPORT.
// Cancellation of the caller's context is returned unchanged.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return festin.Errorf(festin.ETIMEOUT, "%v", unwrapURLError(err))
	}
	return festin.Errorf(festin.ETRANSPORT, "%v", unwrapURLError(err))
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
