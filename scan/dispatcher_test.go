package scan_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/festin"
	"github.com/fwojciec/festin/mock"
	"github.com/fwojciec/festin/scan"
	"github.com/stretchr/testify/assert"
)

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("runs every prober", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		prober := func(name string) festin.Prober {
			return &mock.Prober{
				NameFn: func() string { return name },
				ProbeFn: func(_ context.Context, item festin.FrontierItem, emit festin.Emitter) {
					calls.Add(1)
					emit.Discover(item, name+".example.com")
				},
			}
		}
		d := &scan.Dispatcher{Probers: []festin.Prober{prober("a"), prober("b"), prober("c")}}
		emit := &mock.Emitter{}

		d.Dispatch(context.Background(), festin.FrontierItem{Domain: "example.com", Budget: 1}, emit)

		assert.Equal(t, int32(3), calls.Load())
		assert.ElementsMatch(t, []string{"a.example.com", "b.example.com", "c.example.com"}, emit.Domains())
	})

	t.Run("isolates panicking prober", func(t *testing.T) {
		t.Parallel()

		boom := &mock.Prober{
			NameFn: func() string { return "boom" },
			ProbeFn: func(context.Context, festin.FrontierItem, festin.Emitter) {
				panic("unexpected nil")
			},
		}
		ok := &mock.Prober{
			NameFn: func() string { return "ok" },
			ProbeFn: func(_ context.Context, _ festin.FrontierItem, emit festin.Emitter) {
				emit.Found(&festin.BucketResult{Domain: "example.com"})
			},
		}
		d := &scan.Dispatcher{Probers: []festin.Prober{boom, ok}}
		emit := &mock.Emitter{}

		assert.NotPanics(t, func() {
			d.Dispatch(context.Background(), festin.FrontierItem{Domain: "example.com"}, emit)
		})
		assert.Len(t, emit.Buckets, 1)
	})
}
