package mock

import "github.com/fwojciec/festin"

var _ festin.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of festin.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*festin.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*festin.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ festin.Converter = (*Converter)(nil)

// Converter is a mock implementation of festin.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
