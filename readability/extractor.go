// Package readability provides an alternative content extractor for HTML
// objects, selected with --extractor=readability.
package readability

import (
	"strings"

	"github.com/fwojciec/festin"
	"github.com/go-shiori/go-readability"
)

var _ festin.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*festin.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, festin.Errorf(festin.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, festin.Errorf(festin.EPARSE, "extract content: %v", err)
	}

	return &festin.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
