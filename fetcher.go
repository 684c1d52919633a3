package festin

import (
	"context"
	"net/http"
	"strings"
)

// Response is a fetched HTTP response with its body fully read.
// Non-2xx statuses are responses, not errors.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the lower-cased Content-Type header value.
func (r *Response) ContentType() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return strings.ToLower(r.Header.Get("Content-Type"))
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves URLs over the outbound transport.
type Fetcher interface {
	// Fetch performs a GET request and returns the response.
	// Transport failures are returned as ETIMEOUT or ETRANSPORT errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases idle connections.
	Close() error
}

// Renderer returns the HTML of a page after its scripts have run.
type Renderer interface {
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	Close() error
}

// DomainLimiter provides per-host rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
