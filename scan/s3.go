package scan

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/festin"
)

// S3Host is the global endpoint of Amazon S3.
const S3Host = "s3.amazonaws.com"

var _ festin.Prober = (*S3Prober)(nil)

// BucketURL derives the candidate bucket listing URL for a domain.
//
// A domain already naming an S3 virtual host is fetched directly. A domain
// with "s3" elsewhere is read as {bucket}{sep}s3{provider}, e.g.
// "files-s3.eu.example.net" becomes "http://s3.eu.example.net/files". Any
// other domain is tried as a bucket name on the global S3 endpoint.
func BucketURL(domain string) string {
	if strings.HasSuffix(domain, S3Host) {
		return "http://" + domain
	}

	idx := strings.Index(domain, "s3")
	if idx < 0 {
		return "https://" + S3Host + "/" + domain
	}

	provider := domain[idx:]
	bucket := domain[:idx]
	if n := len(bucket); n > 0 {
		switch bucket[n-1] {
		case '.', '-', '_':
			bucket = bucket[:n-1]
		}
	}
	return "http://" + provider + "/" + bucket
}

// S3Prober checks whether a domain maps to a publicly listable bucket.
type S3Prober struct {
	// Fetcher must not follow redirects so that 301 answers reach Check.
	Fetcher festin.Fetcher
	Parser  festin.ListingParser

	Logger   *slog.Logger
	Recorder festin.Recorder
}

// Name implements festin.Prober.
func (p *S3Prober) Name() string { return "s3" }

// Check fetches the candidate listing for domain and classifies the answer.
func (p *S3Prober) Check(ctx context.Context, domain string) festin.ProbeOutcome {
	logger := orDiscard(p.Logger)
	candidate := BucketURL(domain)

	resp, err := p.Fetcher.Fetch(ctx, candidate)
	if err != nil {
		logger.Info("bucket check failed", "domain", domain, "url", candidate, "kind", failureKind(err), "err", err)
		return festin.Failed(err)
	}

	switch {
	case resp.StatusCode == 301:
		return redirectOutcome(p.Parser, resp)
	case resp.OK():
		return listingOutcome(p.Parser, domain, candidate, resp.Body)
	default:
		return festin.Empty()
	}
}

// Probe implements festin.Prober.
func (p *S3Prober) Probe(ctx context.Context, item festin.FrontierItem, emit festin.Emitter) {
	out := p.Check(ctx, item.Domain)
	orNop(p.Recorder).RecordProbe(p.Name(), out.Kind)

	switch out.Kind {
	case festin.OutcomeFound:
		emit.Found(out.Bucket)
	case festin.OutcomeRedirect:
		orDiscard(p.Logger).Debug("bucket redirect", "domain", item.Domain, "target", out.Redirect)
		emit.Discover(item, out.Redirect)
	case festin.OutcomeEmpty, festin.OutcomeFailed:
	}
}

// listingOutcome turns a listing body into Found when it names at least one
// object. Unparsable bodies are Empty.
func listingOutcome(parser festin.ListingParser, domain, bucketName string, body []byte) festin.ProbeOutcome {
	if len(body) == 0 {
		return festin.Empty()
	}
	keys, err := parser.ParseBucketListing(body)
	if err != nil || len(keys) == 0 {
		return festin.Empty()
	}
	return festin.Found(&festin.BucketResult{
		Domain:     domain,
		BucketName: bucketName,
		Objects:    keys,
	})
}

// redirectOutcome reads the target of a permanent redirect from the error
// body, falling back to the Location header.
func redirectOutcome(parser festin.ListingParser, resp *festin.Response) festin.ProbeOutcome {
	if endpoint, err := parser.ParseRedirectEndpoint(resp.Body); err == nil && endpoint != "" {
		return festin.Redirect(endpoint)
	}
	if loc := resp.Header.Get("Location"); loc != "" {
		if u, err := url.Parse(loc); err == nil && u.Host != "" {
			return festin.Redirect(u.Host)
		}
	}
	return festin.Empty()
}
