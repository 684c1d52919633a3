// Package etree parses S3 XML documents using beevik/etree.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/festin"
)

// S3Namespace is the XML namespace of S3 API responses.
const S3Namespace = "http://s3.amazonaws.com/doc/2006-03-01/"

var _ festin.ListingParser = (*ListingParser)(nil)

// ListingParser implements festin.ListingParser.
type ListingParser struct{}

// NewListingParser creates a new ListingParser.
func NewListingParser() *ListingParser {
	return &ListingParser{}
}

// ParseBucketListing returns the keys of the Contents elements directly
// under the root. Contents in a namespace other than S3's are ignored;
// unqualified ones are accepted since S3-compatible servers often omit it.
func (p *ListingParser) ParseBucketListing(body []byte) ([]string, error) {
	doc, err := read(body)
	if err != nil {
		return nil, err
	}

	root := doc.Root()
	if root == nil {
		return nil, festin.Errorf(festin.EPARSE, "listing has no root element")
	}

	var keys []string
	for _, contents := range root.SelectElements("Contents") {
		if ns := namespaceOf(contents); ns != "" && ns != S3Namespace {
			continue
		}
		key := contents.SelectElement("Key")
		if key == nil {
			continue
		}
		if text := key.Text(); text != "" {
			keys = append(keys, text)
		}
	}
	return keys, nil
}

// ParseRedirectEndpoint returns the text of the first Endpoint element
// anywhere in the document, the root included.
func (p *ListingParser) ParseRedirectEndpoint(body []byte) (string, error) {
	doc, err := read(body)
	if err != nil {
		return "", err
	}

	endpoint := doc.FindElement("//Endpoint")
	if endpoint == nil {
		return "", nil
	}
	return strings.TrimSpace(endpoint.Text()), nil
}

func read(body []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, festin.Errorf(festin.EPARSE, "malformed XML: %v", err)
	}
	return doc, nil
}

// namespaceOf resolves the namespace URI of e from the xmlns declarations
// on e and its ancestors.
func namespaceOf(e *etree.Element) string {
	for el := e; el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			if e.Space == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if e.Space != "" && a.Space == "xmlns" && a.Key == e.Space {
				return a.Value
			}
		}
	}
	return ""
}
