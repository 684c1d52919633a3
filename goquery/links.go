// Package goquery extracts link attributes from HTML using goquery.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/festin"
)

var _ festin.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor implements festin.LinkExtractor.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractAttributes returns the non-empty values of each named attribute.
// All values of the first name come before those of the second, each group
// in document order.
func (e *LinkExtractor) ExtractAttributes(html []byte, names ...string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, festin.Errorf(festin.EPARSE, "failed to parse HTML: %v", err)
	}

	var values []string
	for _, name := range names {
		doc.Find("[" + name + "]").Each(func(_ int, sel *goquery.Selection) {
			v, _ := sel.Attr(name)
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		})
	}
	return values, nil
}
