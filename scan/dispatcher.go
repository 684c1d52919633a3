package scan

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fwojciec/festin"
)

// Dispatcher runs every prober against one domain.
type Dispatcher struct {
	Probers []festin.Prober
	Logger  *slog.Logger
}

// Dispatch runs the probers concurrently and returns when all of them have
// finished. A panicking prober is logged and does not affect its siblings.
func (d *Dispatcher) Dispatch(ctx context.Context, item festin.FrontierItem, emit festin.Emitter) {
	logger := orDiscard(d.Logger)

	var wg sync.WaitGroup
	for _, p := range d.Probers {
		wg.Go(func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("probe panicked", "probe", p.Name(), "domain", item.Domain, "panic", r)
				}
			}()
			p.Probe(ctx, item, emit)
		})
	}
	wg.Wait()
}
