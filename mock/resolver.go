package mock

import (
	"context"

	"github.com/fwojciec/festin"
)

var _ festin.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of festin.Resolver.
type Resolver struct {
	ResolveCNAMEFn func(ctx context.Context, name string) ([]string, error)
}

func (r *Resolver) ResolveCNAME(ctx context.Context, name string) ([]string, error) {
	return r.ResolveCNAMEFn(ctx, name)
}
