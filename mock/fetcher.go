package mock

import (
	"context"

	"github.com/fwojciec/festin"
)

var _ festin.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of festin.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*festin.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*festin.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ festin.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of festin.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
