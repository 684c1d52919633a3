// Package console prints scan events to a terminal.
package console

import (
	"context"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/fwojciec/festin"
)

var (
	_ festin.ResultConsumer = (*ResultPrinter)(nil)
	_ festin.DomainConsumer = (*DomainPrinter)(nil)
)

// Option configures a printer.
type Option func(*palette)

// WithColor forces colored output on or off. By default fatih/color decides
// from the terminal.
func WithColor(enabled bool) Option {
	return func(p *palette) {
		for _, c := range []*color.Color{p.bucket, p.object, p.domain} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

type palette struct {
	bucket *color.Color
	object *color.Color
	domain *color.Color
}

func newPalette(opts []Option) *palette {
	p := &palette{
		bucket: color.New(color.FgHiGreen, color.Bold),
		object: color.New(color.FgGreen),
		domain: color.New(color.FgHiCyan),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ResultPrinter writes a summary line per bucket followed by one line per
// object.
type ResultPrinter struct {
	mu sync.Mutex
	w  io.Writer
	p  *palette
}

// NewResultPrinter creates a ResultPrinter writing to w.
func NewResultPrinter(w io.Writer, opts ...Option) *ResultPrinter {
	return &ResultPrinter{w: w, p: newPalette(opts)}
}

// HandleResult implements festin.ResultConsumer.
func (r *ResultPrinter) HandleResult(_ context.Context, result *festin.BucketResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.p.bucket.Fprintf(r.w, "    *> '%s' - Found %d public objects\n", result.Domain, len(result.Objects)); err != nil {
		return err
	}
	for _, obj := range result.Objects {
		if _, err := r.p.object.Fprintf(r.w, "        -> %s/%s\n", result.Domain, obj); err != nil {
			return err
		}
	}
	return nil
}

// DomainPrinter writes each discovered domain on its own line.
type DomainPrinter struct {
	mu sync.Mutex
	w  io.Writer
	p  *palette
}

// NewDomainPrinter creates a DomainPrinter writing to w.
func NewDomainPrinter(w io.Writer, opts ...Option) *DomainPrinter {
	return &DomainPrinter{w: w, p: newPalette(opts)}
}

// HandleDomain implements festin.DomainConsumer.
func (d *DomainPrinter) HandleDomain(_ context.Context, domain string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.p.domain.Fprintf(d.w, "    +> %s\n", domain)
	return err
}
