package scan

import (
	"context"
	"sync"

	"github.com/fwojciec/festin"
)

// Frontier is the FIFO queue of domains waiting to be scheduled.
//
// It counts pending items: an item is pending from Push until the matching
// Done. Pop reports the frontier drained only when nothing is queued and
// nothing is pending, so a dispatcher still running can never be mistaken
// for the end of the crawl. It is safe for concurrent use.
type Frontier struct {
	mu      sync.Mutex
	items   []festin.FrontierItem
	pending int
	wake    chan struct{}
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{wake: make(chan struct{})}
}

// Push queues an item and marks it pending.
func (f *Frontier) Push(item festin.FrontierItem) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, item)
	f.pending++
	f.broadcast()
}

// Done acknowledges one popped item. Children pushed while handling the
// item must be pushed before Done is called.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pending--
	if f.pending <= 0 {
		f.broadcast()
	}
}

// Hold adds a pending token that is never acknowledged, so the frontier
// never drains. Only context cancellation ends Pop afterwards.
func (f *Frontier) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending++
}

// Pop returns the oldest queued item, blocking while the queue is empty but
// work is still pending. The bool result is false when the frontier is
// drained or ctx is done.
func (f *Frontier) Pop(ctx context.Context) (festin.FrontierItem, bool) {
	for {
		if ctx.Err() != nil {
			return festin.FrontierItem{}, false
		}

		f.mu.Lock()
		if len(f.items) > 0 {
			item := f.items[0]
			f.items = f.items[1:]
			f.mu.Unlock()
			return item, true
		}
		if f.pending <= 0 {
			f.mu.Unlock()
			return festin.FrontierItem{}, false
		}
		wake := f.wake
		f.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			return festin.FrontierItem{}, false
		}
	}
}

// Len returns the number of queued items.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Pending returns the number of items pushed but not yet acknowledged.
func (f *Frontier) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

func (f *Frontier) broadcast() {
	close(f.wake)
	f.wake = make(chan struct{})
}
