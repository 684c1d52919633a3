package festin

// LinkExtractor pulls attribute values out of HTML documents.
type LinkExtractor interface {
	// ExtractAttributes returns the values of every attribute matching
	// one of names. Values for the first name come first, each group in
	// document order.
	ExtractAttributes(html []byte, names ...string) ([]string, error)
}

// ListingParser understands S3 ListBucketResult and redirect documents.
type ListingParser interface {
	// ParseBucketListing returns the object keys of a bucket listing in
	// document order. Malformed XML is an EPARSE error.
	ParseBucketListing(body []byte) ([]string, error)

	// ParseRedirectEndpoint returns the Endpoint host from a 301 body.
	// A document without an Endpoint yields an empty string.
	ParseRedirectEndpoint(body []byte) (string, error)
}
