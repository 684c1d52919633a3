// Package trafilatura reduces HTML objects found in open buckets to their
// main content before indexing.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/festin"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ festin.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Fallback extractors are enabled
// since bucket-hosted pages are often bare markup.
func NewExtractor() *Extractor {
	return &Extractor{opts: trafilatura.Options{EnableFallback: true}}
}

// Extract returns the title and main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*festin.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, festin.Errorf(festin.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, festin.Errorf(festin.EPARSE, "extract content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		if contentHTML, err = render(result.ContentNode); err != nil {
			return nil, err
		}
	}

	return &festin.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
