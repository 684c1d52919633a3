package rod

import (
	"context"
	"time"

	"github.com/fwojciec/festin"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRenderTimeout bounds a single page render.
const DefaultRenderTimeout = 30 * time.Second

var _ festin.Renderer = (*Renderer)(nil)

// Renderer returns the DOM of a page after its scripts have run.
// Renderer is safe for concurrent use.
type Renderer struct {
	manager *BrowserManager
	timeout time.Duration
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRenderTimeout sets the per-page render deadline.
func WithRenderTimeout(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// NewRenderer creates a Renderer over manager. Closing the Renderer closes
// the manager.
func NewRenderer(manager *BrowserManager, opts ...RendererOption) *Renderer {
	r := &Renderer{manager: manager, timeout: DefaultRenderTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render navigates to url and returns the rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := r.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", festin.Errorf(festin.ETRANSPORT, "open page: %v", err)
	}
	defer func() {
		_ = page.Close()
		r.manager.PageDone()
	}()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", renderError(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", renderError(ctx, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", renderError(ctx, err)
	}
	return html, nil
}

// Close shuts the browser down.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

func renderError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return festin.Errorf(festin.ETIMEOUT, "render timed out")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return festin.Errorf(festin.ETRANSPORT, "render: %v", err)
}
