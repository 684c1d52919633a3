package scan

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/festin"
	"golang.org/x/time/rate"
)

var _ festin.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each host. The crawler reaches the
// same host over http and https, and buckets may sit behind explicit ports,
// so limits are kept per hostname: "example.com:8443" and "EXAMPLE.com"
// share one bucket of tokens.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter allows rps requests per second to each hostname with a
// burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to host is allowed. host may carry a port,
// as url.URL.Host does. Returns an error if ctx ends first.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	key := hostname(host)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Hosts returns the number of hostnames seen so far.
func (d *DomainLimiter) Hosts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.limiters)
}

func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSuffix(host, "."))
}
