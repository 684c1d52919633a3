package festin

import "context"

// Resolver looks up DNS records.
type Resolver interface {
	// ResolveCNAME returns the canonical-name targets of name with any
	// trailing dot removed. A name without CNAME records yields an empty
	// slice and a nil error. Retryable failures are ETRANSIENT.
	ResolveCNAME(ctx context.Context, name string) ([]string, error)
}
