package mock

import "github.com/fwojciec/festin"

var _ festin.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of festin.LinkExtractor.
type LinkExtractor struct {
	ExtractAttributesFn func(html []byte, names ...string) ([]string, error)
}

func (e *LinkExtractor) ExtractAttributes(html []byte, names ...string) ([]string, error) {
	return e.ExtractAttributesFn(html, names...)
}

var _ festin.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of festin.ListingParser.
type ListingParser struct {
	ParseBucketListingFn    func(body []byte) ([]string, error)
	ParseRedirectEndpointFn func(body []byte) (string, error)
}

func (p *ListingParser) ParseBucketListing(body []byte) ([]string, error) {
	return p.ParseBucketListingFn(body)
}

func (p *ListingParser) ParseRedirectEndpoint(body []byte) (string, error) {
	return p.ParseRedirectEndpointFn(body)
}
