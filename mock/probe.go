package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/festin"
)

var _ festin.Prober = (*Prober)(nil)

// Prober is a mock implementation of festin.Prober.
type Prober struct {
	NameFn  func() string
	ProbeFn func(ctx context.Context, item festin.FrontierItem, emit festin.Emitter)
}

func (p *Prober) Name() string {
	return p.NameFn()
}

func (p *Prober) Probe(ctx context.Context, item festin.FrontierItem, emit festin.Emitter) {
	p.ProbeFn(ctx, item, emit)
}

var _ festin.Emitter = (*Emitter)(nil)

// Emitter records every call it receives. It is safe for concurrent use.
type Emitter struct {
	mu         sync.Mutex
	Discovered []festin.FrontierItem
	Buckets    []*festin.BucketResult
}

func (e *Emitter) Discover(from festin.FrontierItem, domain string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Discovered = append(e.Discovered, from.Derive(domain))
}

func (e *Emitter) Found(result *festin.BucketResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Buckets = append(e.Buckets, result)
}

// Domains returns the discovered domain names in call order.
func (e *Emitter) Domains() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	domains := make([]string, 0, len(e.Discovered))
	for _, item := range e.Discovered {
		domains = append(domains, item.Domain)
	}
	return domains
}

var _ festin.Recorder = (*Recorder)(nil)

// Recorder is a mock implementation of festin.Recorder.
type Recorder struct {
	RecordDispositionFn func(d festin.Disposition)
	RecordProbeFn       func(probe string, kind festin.OutcomeKind)
	DispatchStartedFn   func()
	DispatchFinishedFn  func()
}

func (r *Recorder) RecordDisposition(d festin.Disposition) {
	r.RecordDispositionFn(d)
}

func (r *Recorder) RecordProbe(probe string, kind festin.OutcomeKind) {
	r.RecordProbeFn(probe, kind)
}

func (r *Recorder) DispatchStarted() {
	r.DispatchStartedFn()
}

func (r *Recorder) DispatchFinished() {
	r.DispatchFinishedFn()
}
