package festin

import "context"

// Emitter receives what a probe learns about a domain.
// Implementations must be safe for concurrent use.
type Emitter interface {
	// Discover schedules domain as a child of from.
	Discover(from FrontierItem, domain string)

	// Found publishes a readable bucket.
	Found(result *BucketResult)
}

// Prober inspects one domain and reports through an Emitter.
// Probe must not return errors: failures are logged and swallowed so
// sibling probes keep running.
type Prober interface {
	Name() string
	Probe(ctx context.Context, item FrontierItem, emit Emitter)
}

// Recorder observes the scheduler. Implementations must be safe for
// concurrent use.
type Recorder interface {
	RecordDisposition(d Disposition)
	RecordProbe(probe string, kind OutcomeKind)
	DispatchStarted()
	DispatchFinished()
}

// NopRecorder discards every observation.
type NopRecorder struct{}

func (NopRecorder) RecordDisposition(Disposition) {}
func (NopRecorder) RecordProbe(string, OutcomeKind) {}
func (NopRecorder) DispatchStarted() {}
func (NopRecorder) DispatchFinished() {}
