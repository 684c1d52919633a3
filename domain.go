package festin

// FrontierItem is a domain waiting in the crawl frontier together with the
// number of derivation hops it may still produce.
type FrontierItem struct {
	Domain string
	Budget int
}

// Derive returns the item for a domain discovered while probing i.
// The budget of a derived item is always one less than its parent's.
func (i FrontierItem) Derive(domain string) FrontierItem {
	return FrontierItem{Domain: domain, Budget: i.Budget - 1}
}

// Exhausted reports whether the item has run out of budget and must be
// dropped without processing.
func (i FrontierItem) Exhausted() bool {
	return i.Budget < 0
}

// BucketResult is a publicly listable bucket and the object keys it exposed.
type BucketResult struct {
	// Domain is the frontier domain whose probe found the bucket.
	Domain string `json:"domain"`

	// BucketName is the URL the listing was fetched from.
	BucketName string `json:"bucketName"`

	// Objects holds the listing keys in document order.
	Objects []string `json:"objects"`
}

// Disposition records what the scheduler did with a domain it pulled from
// the frontier. Every pulled domain receives exactly one disposition.
type Disposition string

// Scheduler dispositions.
const (
	DispositionProcessed   Disposition = "processed"
	DispositionBlacklisted Disposition = "blacklisted"
	DispositionExhausted   Disposition = "exhausted"
	DispositionDuplicate   Disposition = "duplicate"
	DispositionFiltered    Disposition = "filtered"
)

// Dispositions lists every disposition in a stable order.
func Dispositions() []Disposition {
	return []Disposition{
		DispositionProcessed,
		DispositionBlacklisted,
		DispositionExhausted,
		DispositionDuplicate,
		DispositionFiltered,
	}
}
