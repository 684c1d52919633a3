// Package scan provides bucket discovery orchestration. It schedules domains
// from the frontier, dispatches probes under a concurrency cap, and fans
// events out to consumers.
package scan

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/festin"
	"golang.org/x/sync/errgroup"
)

// Default scheduler settings.
const (
	DefaultConcurrency  = 5
	DefaultMaxRecursion = 5
)

// Scheduler pulls domains from the frontier, decides what to do with each
// and dispatches probes for the ones worth processing.
//
// A Scheduler runs once. Inject may be called before or during Run.
type Scheduler struct {
	Probers []festin.Prober

	// Blacklist rejects domains before dedup. Nil means no rules.
	Blacklist *festin.Blacklist

	// DomainRegex, if set, must match a domain for it to be processed.
	DomainRegex *regexp.Regexp

	MaxRecursion int
	Concurrency  int

	// Watch keeps the scheduler running after the frontier empties so
	// injected domains can arrive. Only context cancellation stops it.
	Watch bool

	// ExpectedDomains presizes the processed set.
	ExpectedDomains uint

	// Results receives every bucket found.
	Results []festin.ResultConsumer

	// Domains receives every domain that passed blacklist and dedup.
	Domains []festin.DomainConsumer

	// RawDomains receives every domain popped with budget left.
	RawDomains []festin.DomainConsumer

	Recorder festin.Recorder
	Logger   *slog.Logger

	once     sync.Once
	frontier *Frontier
}

// Result holds the outcome of a scheduler run.
type Result struct {
	// Dispositions counts popped domains by what happened to them.
	Dispositions map[festin.Disposition]int

	// Buckets is the number of buckets found.
	Buckets int
}

// Total returns the number of domains popped from the frontier.
func (r *Result) Total() int {
	var n int
	for _, c := range r.Dispositions {
		n += c
	}
	return n
}

func (s *Scheduler) front() *Frontier {
	s.once.Do(func() {
		s.frontier = NewFrontier()
	})
	return s.frontier
}

// Inject adds a domain at the full recursion budget.
func (s *Scheduler) Inject(domain string) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return
	}
	s.front().Push(festin.FrontierItem{Domain: domain, Budget: s.MaxRecursion})
}

// Run seeds the frontier and processes domains until the frontier drains,
// or, in watch mode, until ctx is canceled. Consumers have seen every event
// by the time Run returns. The error is ctx.Err() if the run was cut short.
func (s *Scheduler) Run(ctx context.Context, seeds []string) (*Result, error) {
	logger := orDiscard(s.Logger)
	recorder := orNop(s.Recorder)
	frontier := s.front()

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := NewQueue[*festin.BucketResult]()
	filtered := NewQueue[string]()
	raw := NewQueue[string]()

	var sinks sync.WaitGroup
	sinks.Go(func() { drain(ctx, "results", results, resultHandlers(s.Results), logger) })
	sinks.Go(func() { drain(ctx, "domains", filtered, domainHandlers(s.Domains), logger) })
	sinks.Go(func() { drain(ctx, "raw", raw, domainHandlers(s.RawDomains), logger) })

	for _, seed := range seeds {
		s.Inject(seed)
	}
	if s.Watch {
		frontier.Hold()
	}

	processed := NewProcessedSet(s.ExpectedDomains)
	emit := &emitter{frontier: frontier, results: results}
	dispatcher := &Dispatcher{Probers: s.Probers, Logger: logger}

	counts := make(map[festin.Disposition]int)

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for {
		item, ok := frontier.Pop(ctx)
		if !ok {
			break
		}

		d := s.admit(logger, item, processed, raw, filtered)
		counts[d]++
		recorder.RecordDisposition(d)
		if d != festin.DispositionProcessed {
			frontier.Done()
			continue
		}

		logger.Debug("dispatch", "domain", item.Domain, "budget", item.Budget)
		recorder.DispatchStarted()
		g.Go(func() error {
			defer frontier.Done()
			defer recorder.DispatchFinished()
			dispatcher.Dispatch(ctx, item, emit)
			return nil
		})
	}

	_ = g.Wait()

	results.Close()
	filtered.Close()
	raw.Close()
	sinks.Wait()

	res := &Result{
		Dispositions: counts,
		Buckets:      int(emit.found.Load()),
	}
	logger.Info("scan finished",
		"processed", counts[festin.DispositionProcessed],
		"skipped", res.Total()-counts[festin.DispositionProcessed],
		"buckets", res.Buckets,
	)
	return res, ctx.Err()
}

// admit assigns the disposition of a popped item and publishes it to the
// discovery streams it reaches.
func (s *Scheduler) admit(logger *slog.Logger, item festin.FrontierItem, processed *ProcessedSet, raw, filtered *Queue[string]) festin.Disposition {
	if item.Exhausted() {
		return festin.DispositionExhausted
	}

	raw.Push(item.Domain)

	if reason, skip := s.Blacklist.Check(item.Domain); skip {
		logger.Debug("skip blacklisted domain", "domain", item.Domain, "reason", reason)
		return festin.DispositionBlacklisted
	}

	if !processed.TryAdd(item.Domain) {
		return festin.DispositionDuplicate
	}

	filtered.Push(item.Domain)

	if s.DomainRegex != nil && !s.DomainRegex.MatchString(item.Domain) {
		logger.Debug("skip unmatched domain", "domain", item.Domain)
		return festin.DispositionFiltered
	}

	return festin.DispositionProcessed
}

// emitter routes probe discoveries to the frontier and results stream.
type emitter struct {
	frontier *Frontier
	results  *Queue[*festin.BucketResult]
	found    atomic.Int64
}

func (e *emitter) Discover(from festin.FrontierItem, domain string) {
	e.frontier.Push(from.Derive(domain))
}

func (e *emitter) Found(result *festin.BucketResult) {
	e.found.Add(1)
	e.results.Push(result)
}

func resultHandlers(consumers []festin.ResultConsumer) []handler[*festin.BucketResult] {
	handlers := make([]handler[*festin.BucketResult], 0, len(consumers))
	for _, c := range consumers {
		handlers = append(handlers, c.HandleResult)
	}
	return handlers
}

func domainHandlers(consumers []festin.DomainConsumer) []handler[string] {
	handlers := make([]handler[string], 0, len(consumers))
	for _, c := range consumers {
		handlers = append(handlers, c.HandleDomain)
	}
	return handlers
}
