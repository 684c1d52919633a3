// Package dns implements festin.Resolver with miekg/dns.
package dns

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/fwojciec/festin"
	"github.com/miekg/dns"
)

// DefaultTimeout bounds a single query to a single server.
const DefaultTimeout = 5 * time.Second

// DefaultConfigFile is read for servers when none are configured.
const DefaultConfigFile = "/etc/resolv.conf"

// Ensure Resolver implements festin.Resolver at compile time.
var _ festin.Resolver = (*Resolver)(nil)

// Resolver sends CNAME queries to a list of DNS servers, trying each in
// turn until one answers.
type Resolver struct {
	client     *dns.Client
	servers    []string
	timeout    time.Duration
	configFile string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithServers sets the servers to query. A server without a port uses 53.
func WithServers(servers ...string) Option {
	return func(r *Resolver) {
		for _, s := range servers {
			if s = strings.TrimSpace(s); s != "" {
				r.servers = append(r.servers, withPort(s))
			}
		}
	}
}

// WithTimeout sets the per-query timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithConfigFile sets the resolv.conf file read when no servers are given.
func WithConfigFile(path string) Option {
	return func(r *Resolver) {
		r.configFile = path
	}
}

// NewResolver creates a Resolver. Without WithServers the servers are read
// from the system resolver configuration; failing to read it is an
// EINVALID error.
func NewResolver(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		timeout:    DefaultTimeout,
		configFile: DefaultConfigFile,
	}
	for _, opt := range opts {
		opt(r)
	}

	if len(r.servers) == 0 {
		conf, err := dns.ClientConfigFromFile(r.configFile)
		if err != nil {
			return nil, festin.Errorf(festin.EINVALID, "read resolver config: %v", err)
		}
		for _, s := range conf.Servers {
			r.servers = append(r.servers, net.JoinHostPort(s, conf.Port))
		}
		if len(r.servers) == 0 {
			return nil, festin.Errorf(festin.EINVALID, "no DNS servers in %s", r.configFile)
		}
	}

	r.client = &dns.Client{Net: "udp", Timeout: r.timeout}
	return r, nil
}

// Servers returns the servers queried, in order.
func (r *Resolver) Servers() []string {
	return append([]string(nil), r.servers...)
}

// ResolveCNAME implements festin.Resolver.
func (r *Resolver) ResolveCNAME(ctx context.Context, name string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeCNAME)
	msg.RecursionDesired = true

	var lastErr error
	for _, server := range r.servers {
		resp, _, err := r.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = classify(err)
			continue
		}

		targets, err := answer(resp)
		if err != nil {
			lastErr = err
			continue
		}
		return targets, nil
	}
	return nil, lastErr
}

// answer extracts CNAME targets from a response.
func answer(resp *dns.Msg) ([]string, error) {
	if resp.Truncated {
		return nil, festin.Errorf(festin.ETRANSIENT, "truncated response")
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, nil
	case dns.RcodeServerFailure:
		return nil, festin.Errorf(festin.ETRANSIENT, "server failure")
	default:
		return nil, festin.Errorf(festin.ETRANSPORT, "query failed: %s", dns.RcodeToString[resp.Rcode])
	}

	var targets []string
	seen := make(map[string]bool)
	for _, rr := range resp.Answer {
		cname, ok := rr.(*dns.CNAME)
		if !ok {
			continue
		}
		target := strings.TrimSuffix(cname.Target, ".")
		if target == "" || seen[target] {
			continue
		}
		seen[target] = true
		targets = append(targets, target)
	}
	return targets, nil
}

// classify maps an exchange error onto ETRANSIENT (timeouts, malformed
// replies) or ETRANSPORT.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return festin.Errorf(festin.ETRANSIENT, "timeout: %v", err)
	}
	var dnsErr *dns.Error
	if errors.As(err, &dnsErr) {
		return festin.Errorf(festin.ETRANSIENT, "malformed response: %v", err)
	}
	return festin.Errorf(festin.ETRANSPORT, "%v", err)
}

func withPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(strings.Trim(server, "[]"), "53")
}
