package scan

import (
	"context"
	"fmt"
	"log/slog"
)

// handler is one consumer bound to a stream.
type handler[T any] func(ctx context.Context, v T) error

// drain delivers every item of q to each handler in registration order
// until q is closed and empty. A failing or panicking handler is logged and
// skipped for that item only.
func drain[T any](ctx context.Context, stream string, q *Queue[T], handlers []handler[T], logger *slog.Logger) {
	// The queue is always closed by its producer, so delivery ignores
	// cancellation and items queued before shutdown still reach consumers.
	ctx = context.WithoutCancel(ctx)
	for {
		v, ok := q.Pop(ctx)
		if !ok {
			return
		}
		for i, h := range handlers {
			if err := invoke(ctx, h, v); err != nil {
				logger.Error("consumer failed", "stream", stream, "consumer", i, "err", err)
			}
		}
	}
}

func invoke[T any](ctx context.Context, h handler[T], v T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("consumer panicked: %v", r)
		}
	}()
	return h(ctx, v)
}
