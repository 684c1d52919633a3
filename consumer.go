package festin

import "context"

// ResultConsumer handles buckets published on the results stream.
type ResultConsumer interface {
	HandleResult(ctx context.Context, result *BucketResult) error
}

// DomainConsumer handles domains published on a discovery stream.
type DomainConsumer interface {
	HandleDomain(ctx context.Context, domain string) error
}

// ResultConsumerFunc adapts a function to ResultConsumer.
type ResultConsumerFunc func(ctx context.Context, result *BucketResult) error

// HandleResult calls f(ctx, result).
func (f ResultConsumerFunc) HandleResult(ctx context.Context, result *BucketResult) error {
	return f(ctx, result)
}

// DomainConsumerFunc adapts a function to DomainConsumer.
type DomainConsumerFunc func(ctx context.Context, domain string) error

// HandleDomain calls f(ctx, domain).
func (f DomainConsumerFunc) HandleDomain(ctx context.Context, domain string) error {
	return f(ctx, domain)
}

// RunResults returns a consumer that stores every result in s against runID.
func RunResults(s BucketService, runID string) ResultConsumer {
	return ResultConsumerFunc(func(ctx context.Context, r *BucketResult) error {
		return s.CreateBucket(ctx, &Bucket{
			RunID:      runID,
			Domain:     r.Domain,
			BucketName: r.BucketName,
			Objects:    r.Objects,
		})
	})
}

// RunDomains returns a consumer that stores every domain in s against runID.
func RunDomains(s DomainService, runID string) DomainConsumer {
	return DomainConsumerFunc(func(ctx context.Context, name string) error {
		return s.CreateDomain(ctx, &Domain{RunID: runID, Name: name})
	})
}

// Indexer stores object contents in a full-text index.
type Indexer interface {
	// Index adds a document for one object. Indexing the same object
	// twice is not an error.
	Index(ctx context.Context, bucketName, objectPath string, content []byte) error
}
