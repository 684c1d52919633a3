package scan

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/festin"
)

var _ festin.Prober = (*CNAMEProbe)(nil)

// CNAMEProbe follows a domain's CNAME records. Storage providers commonly
// sit behind a CNAME, so each target is scheduled as a new domain.
type CNAMEProbe struct {
	Resolver  festin.Resolver
	Blacklist *festin.Blacklist

	// RetryDelays are the pauses between attempts after an ETRANSIENT
	// failure. Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	Logger   *slog.Logger
	Recorder festin.Recorder
}

// Name implements festin.Prober.
func (p *CNAMEProbe) Name() string { return "cname" }

// Probe implements festin.Prober.
func (p *CNAMEProbe) Probe(ctx context.Context, item festin.FrontierItem, emit festin.Emitter) {
	logger := orDiscard(p.Logger).With("domain", item.Domain)
	recorder := orNop(p.Recorder)

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	targets, err := RetryWithDelays(ctx, delays, isTransient, func(ctx context.Context) ([]string, error) {
		return p.Resolver.ResolveCNAME(ctx, item.Domain)
	}, logger)
	if err != nil {
		logger.Info("cname lookup failed", "err", err)
		recorder.RecordProbe(p.Name(), festin.OutcomeFailed)
		return
	}

	kind := festin.OutcomeEmpty
	for _, target := range targets {
		if target == "" {
			continue
		}
		if reason, skip := p.Blacklist.Check(target); skip {
			logger.Debug("skip cname target", "target", target, "reason", reason)
			continue
		}
		emit.Discover(item, target)
		kind = festin.OutcomeRedirect
	}
	recorder.RecordProbe(p.Name(), kind)
}

func isTransient(err error) bool {
	return festin.ErrorCode(err) == festin.ETRANSIENT
}
