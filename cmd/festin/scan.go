package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/fwojciec/festin"
	"github.com/fwojciec/festin/console"
	"github.com/fwojciec/festin/dns"
	"github.com/fwojciec/festin/etree"
	"github.com/fwojciec/festin/fs"
	"github.com/fwojciec/festin/goquery"
	"github.com/fwojciec/festin/htmltomarkdown"
	festinhttp "github.com/fwojciec/festin/http"
	festinprom "github.com/fwojciec/festin/prometheus"
	"github.com/fwojciec/festin/readability"
	"github.com/fwojciec/festin/redis"
	"github.com/fwojciec/festin/rod"
	"github.com/fwojciec/festin/scan"
	festinslog "github.com/fwojciec/festin/slog"
	"github.com/fwojciec/festin/trafilatura"
	"github.com/prometheus/client_golang/prometheus"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	logger := newLogger(deps.Stderr, c.Quiet, c.Debug)

	seeds, err := c.seeds()
	if err != nil {
		return err
	}
	watchFile := c.WatchFile
	if watchFile == "" {
		watchFile = c.FileDomains
	}
	if len(seeds) == 0 && !c.Watch {
		return festin.Errorf(festin.EINVALID, "at least one domain is required")
	}
	if c.Watch && watchFile == "" {
		return festin.Errorf(festin.EINVALID, "--watch requires --watch-file or --file-domains")
	}

	var domainRegex *regexp.Regexp
	if c.DomainRegex != "" {
		if domainRegex, err = regexp.Compile(c.DomainRegex); err != nil {
			return festin.Errorf(festin.EINVALID, "invalid domain regex: %v", err)
		}
	}

	// Transport construction failures abort the run.
	bucketFetcher, pageFetcher, err := c.fetchers(ctx, deps, logger)
	if err != nil {
		return err
	}
	defer bucketFetcher.Close()
	defer pageFetcher.Close()

	resolver, err := c.resolver(deps, logger)
	if err != nil {
		return err
	}

	var renderer festin.Renderer
	if c.Render {
		if renderer, err = c.renderer(logger); err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return err
		}
		defer renderer.Close()
	}

	recorder := festin.Recorder(festin.NopRecorder{})
	if c.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		recorder = festinprom.NewRecorder(reg)
		stop := serveMetrics(c.MetricsAddr, reg, logger)
		defer stop()
	}

	run := &festin.Run{Seeds: seeds, MaxRecursion: c.MaxRecursion, Watch: c.Watch}
	if err := deps.Runs.CreateRun(ctx, run); err != nil {
		return err
	}
	defer func() {
		if err := deps.Runs.FinishRun(context.WithoutCancel(ctx), run.ID); err != nil {
			logger.Error("finish run failed", "run", run.ID, "err", err)
		}
	}()

	blacklist := festin.DefaultBlacklist()
	parser := etree.NewListingParser()
	sched := &scan.Scheduler{
		Probers: []festin.Prober{
			&scan.S3Prober{
				Fetcher:  bucketFetcher,
				Parser:   parser,
				Logger:   logger,
				Recorder: recorder,
			},
			&scan.LinkCrawler{
				Fetcher:   pageFetcher,
				Extractor: goquery.NewLinkExtractor(),
				Parser:    parser,
				Renderer:  renderer,
				Blacklist: blacklist,
				Logger:    logger,
				Recorder:  recorder,
			},
			&scan.CNAMEProbe{
				Resolver:  resolver,
				Blacklist: blacklist,
				Logger:    logger,
				Recorder:  recorder,
			},
		},
		Blacklist:    blacklist,
		DomainRegex:  domainRegex,
		MaxRecursion: c.MaxRecursion,
		Concurrency:  c.Concurrency,
		Watch:        c.Watch,
		Recorder:     recorder,
		Logger:       logger,
	}

	closers, err := c.consumers(ctx, deps, sched, run.ID, pageFetcher, logger)
	defer func() {
		for _, cl := range closers {
			_ = cl.Close()
		}
	}()
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	if c.Watch {
		watcher := fs.NewWatcher(watchFile, logger)
		wg.Go(func() {
			if err := watcher.Run(ctx, sched.Inject); err != nil {
				logger.Error("watch failed", "file", watchFile, "err", err)
			}
		})
	}

	logger.Info("scan started", "run", run.ID, "seeds", len(seeds), "concurrency", c.Concurrency, "max_recursion", c.MaxRecursion)
	result, err := sched.Run(ctx, seeds)
	wg.Wait()

	args := []any{"run", run.ID, "domains", result.Total(), "buckets", result.Buckets}
	for _, d := range festin.Dispositions() {
		args = append(args, string(d), result.Dispositions[d])
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("scan interrupted", args...)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("run complete", args...)
	return nil
}

func (c *ScanCmd) seeds() ([]string, error) {
	seeds := append([]string(nil), c.Domains...)
	if c.FileDomains != "" {
		lines, err := fs.ReadLinesFile(c.FileDomains)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, lines...)
	}
	return seeds, nil
}

// fetchers returns the non-redirecting fetcher used for bucket checks and
// the redirect-following fetcher used for pages and objects.
func (c *ScanCmd) fetchers(ctx context.Context, deps *Dependencies, logger *slog.Logger) (festin.Fetcher, festin.Fetcher, error) {
	if deps.Fetcher != nil {
		f := festinslog.NewLoggingFetcher(deps.Fetcher, logger)
		return f, f, nil
	}

	opts := []festinhttp.Option{festinhttp.WithTimeout(c.HTTPTimeout)}
	if c.Tor {
		if err := festinhttp.CheckConnectivity(ctx, c.ProxyAddr); err != nil {
			return nil, nil, fmt.Errorf("proxy unavailable: %v", festin.ErrorMessage(err))
		}
		opts = append(opts, festinhttp.WithProxy(c.ProxyAddr))
	}
	if c.Rate > 0 {
		opts = append(opts, festinhttp.WithRateLimiter(scan.NewDomainLimiter(c.Rate)))
	}

	bucket, err := festinhttp.NewFetcher(opts...)
	if err != nil {
		return nil, nil, err
	}
	page, err := festinhttp.NewFetcher(append(opts, festinhttp.WithFollowRedirects())...)
	if err != nil {
		bucket.Close()
		return nil, nil, err
	}
	return festinslog.NewLoggingFetcher(bucket, logger), festinslog.NewLoggingFetcher(page, logger), nil
}

func (c *ScanCmd) resolver(deps *Dependencies, logger *slog.Logger) (festin.Resolver, error) {
	if deps.Resolver != nil {
		return festinslog.NewLoggingResolver(deps.Resolver, logger), nil
	}

	var opts []dns.Option
	if len(c.DNSResolver) > 0 {
		opts = append(opts, dns.WithServers(c.DNSResolver...))
	}
	r, err := dns.NewResolver(opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("dns resolver configured", "servers", r.Servers())
	return festinslog.NewLoggingResolver(r, logger), nil
}

func (c *ScanCmd) renderer(logger *slog.Logger) (festin.Renderer, error) {
	var opts []rod.ManagerOption
	if c.Tor {
		opts = append(opts, rod.WithProxy(c.ProxyAddr))
	}
	manager, err := rod.NewBrowserManager(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return festinslog.NewLoggingRenderer(rod.NewRenderer(manager), logger), nil
}

// consumers attaches every configured sink to sched and returns what must
// be closed once the scan is over.
func (c *ScanCmd) consumers(ctx context.Context, deps *Dependencies, sched *scan.Scheduler, runID string, fetcher festin.Fetcher, logger *slog.Logger) ([]io.Closer, error) {
	var closers []io.Closer

	sched.Results = append(sched.Results, festin.RunResults(deps.Buckets, runID))
	sched.Domains = append(sched.Domains, festin.RunDomains(deps.Domains, runID))

	if !c.Quiet {
		sched.Results = append(sched.Results, console.NewResultPrinter(deps.Stdout))
	}
	if c.Debug {
		sched.Domains = append(sched.Domains, console.NewDomainPrinter(deps.Stdout))
	}

	if c.ResultFile != "" {
		f, err := fs.OpenResultsFile(c.ResultFile)
		if err != nil {
			return closers, err
		}
		closers = append(closers, f)
		sched.Results = append(sched.Results, f)
	}
	if c.DiscoveredDomains != "" {
		f, err := fs.OpenDomainsFile(c.DiscoveredDomains)
		if err != nil {
			return closers, err
		}
		closers = append(closers, f)
		sched.Domains = append(sched.Domains, f)
	}
	if c.RawDiscoveredDomains != "" {
		f, err := fs.OpenDomainsFile(c.RawDiscoveredDomains)
		if err != nil {
			return closers, err
		}
		closers = append(closers, f)
		sched.RawDomains = append(sched.RawDomains, f)
	}

	if c.Index {
		indexer := deps.Indexer
		if indexer == nil {
			ri, err := redis.Dial(c.IndexServer)
			if err != nil {
				return closers, err
			}
			closers = append(closers, ri)
			if err := ri.Open(ctx); err != nil {
				fmt.Fprintf(deps.Stderr, "Hint: --index needs a RediSearch server at %s\n", c.IndexServer)
				return closers, err
			}
			indexer = ri
		}
		sched.Results = append(sched.Results, &scan.Downloader{
			Fetcher:   fetcher,
			Indexer:   festinslog.NewLoggingIndexer(indexer, logger),
			Extractor: c.extractor(),
			Converter: htmltomarkdown.NewConverter(),
			Indexed:   scan.NewIndexedFilter(100000),
			Logger:    logger,
		})
	}

	return closers, nil
}

func (c *ScanCmd) extractor() festin.Extractor {
	if c.Extractor == "readability" {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor()
}

func newLogger(w io.Writer, quiet, debug bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case debug:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// serveMetrics serves /metrics on addr until the returned stop func is
// called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", festinprom.Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "err", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
