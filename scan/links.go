package scan

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/festin"
)

var _ festin.Prober = (*LinkCrawler)(nil)

// LinkCrawler fetches a domain's front page over http and https and feeds
// every host it links to back into the frontier. A front page that is
// itself a bucket listing is reported as a bucket.
type LinkCrawler struct {
	// Fetcher should follow redirects.
	Fetcher   festin.Fetcher
	Extractor festin.LinkExtractor
	Parser    festin.ListingParser

	// Renderer, if set, re-renders HTML pages so links inserted by
	// scripts are seen. Render failures fall back to the fetched body.
	Renderer festin.Renderer

	Blacklist *festin.Blacklist
	Logger    *slog.Logger
	Recorder  festin.Recorder
}

// Name implements festin.Prober.
func (c *LinkCrawler) Name() string { return "links" }

// Probe implements festin.Prober.
func (c *LinkCrawler) Probe(ctx context.Context, item festin.FrontierItem, emit festin.Emitter) {
	logger := orDiscard(c.Logger)
	recorder := orNop(c.Recorder)

	seen := make(map[string]struct{})
	for _, scheme := range []string{"http", "https"} {
		target := scheme + "://" + item.Domain

		resp, err := c.Fetcher.Fetch(ctx, target)
		if err != nil {
			logger.Info("page fetch failed", "domain", item.Domain, "url", target, "kind", failureKind(err), "err", err)
			recorder.RecordProbe(c.Name(), festin.OutcomeFailed)
			continue
		}

		contentType := resp.ContentType()
		switch {
		case strings.Contains(contentType, "xml"):
			out := c.xmlOutcome(item.Domain, target, resp)
			recorder.RecordProbe(c.Name(), out.Kind)
			switch out.Kind {
			case festin.OutcomeFound:
				emit.Found(out.Bucket)
			case festin.OutcomeRedirect:
				logger.Debug("bucket redirect", "domain", item.Domain, "url", target, "target", out.Redirect)
				emit.Discover(item, out.Redirect)
			case festin.OutcomeEmpty, festin.OutcomeFailed:
			}
		case strings.Contains(contentType, "html"):
			n := c.follow(ctx, logger, item, target, resp.Body, seen, emit)
			kind := festin.OutcomeEmpty
			if n > 0 {
				kind = festin.OutcomeRedirect
			}
			recorder.RecordProbe(c.Name(), kind)
		default:
			recorder.RecordProbe(c.Name(), festin.OutcomeEmpty)
		}
	}
}

// xmlOutcome classifies an XML front page the way S3Prober classifies a
// bucket URL. S3 sends permanent redirects without a Location header, so
// the fetcher hands them back even when it follows redirects.
func (c *LinkCrawler) xmlOutcome(domain, target string, resp *festin.Response) festin.ProbeOutcome {
	switch {
	case resp.StatusCode == 301:
		return redirectOutcome(c.Parser, resp)
	case resp.OK():
		return listingOutcome(c.Parser, domain, target, resp.Body)
	default:
		return festin.Empty()
	}
}

// follow emits every new, non-blacklisted host linked from the page and
// returns how many were emitted.
func (c *LinkCrawler) follow(ctx context.Context, logger *slog.Logger, item festin.FrontierItem, target string, body []byte, seen map[string]struct{}, emit festin.Emitter) int {
	if c.Renderer != nil {
		html, err := c.Renderer.Render(ctx, target)
		if err != nil {
			logger.Debug("render failed", "url", target, "err", err)
		} else {
			body = []byte(html)
		}
	}

	links, err := c.Extractor.ExtractAttributes(body, "href", "src")
	if err != nil {
		logger.Debug("link extraction failed", "url", target, "err", err)
		return 0
	}

	var n int
	for _, link := range links {
		host := linkHost(link)
		if host == "" {
			continue
		}
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}

		if reason, skip := c.Blacklist.Check(host); skip {
			logger.Debug("skip linked domain", "domain", host, "reason", reason, "from", item.Domain)
			continue
		}
		emit.Discover(item, host)
		n++
	}
	return n
}

// linkHost returns the authority (host[:port]) of a link, or "" for
// relative and unparsable links.
func linkHost(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	return u.Host
}
