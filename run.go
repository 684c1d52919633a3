package festin

import (
	"context"
	"time"
)

// Run is one invocation of the scanner recorded in the catalogue.
type Run struct {
	ID           string
	Seeds        []string
	MaxRecursion int
	StartedAt    time.Time

	// Watch runs take further seeds from a watched file and may start
	// with none.
	Watch bool

	// FinishedAt is zero while the run is in progress.
	FinishedAt time.Time
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if len(r.Seeds) == 0 && !r.Watch {
		return Errorf(EINVALID, "run requires at least one seed")
	}
	if r.MaxRecursion < 0 {
		return Errorf(EINVALID, "max recursion must not be negative")
	}
	return nil
}

// RunFilter narrows FindRuns.
type RunFilter struct {
	ID *string

	Limit  int
	Offset int
}

// RunService manages the run catalogue.
type RunService interface {
	// CreateRun assigns an ID and start time and stores the run.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stamps the finish time. Returns ENOTFOUND for unknown IDs.
	FinishRun(ctx context.Context, id string) error

	// FindRuns returns runs ordered by start time, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// Bucket is a BucketResult stored against a run.
type Bucket struct {
	ID         string
	RunID      string
	Domain     string
	BucketName string
	Objects    []string
	CreatedAt  time.Time
}

// BucketFilter narrows FindBuckets.
type BucketFilter struct {
	RunID      *string
	BucketName *string

	Limit  int
	Offset int
}

// BucketService stores found buckets.
type BucketService interface {
	// CreateBucket assigns an ID and stores the bucket.
	CreateBucket(ctx context.Context, bucket *Bucket) error

	// FindBuckets returns buckets in insertion order.
	FindBuckets(ctx context.Context, filter BucketFilter) ([]*Bucket, error)
}

// Domain is a discovered domain stored against a run.
type Domain struct {
	RunID     string
	Name      string
	CreatedAt time.Time
}

// DomainFilter narrows FindDomains.
type DomainFilter struct {
	RunID *string

	Limit  int
	Offset int
}

// DomainService stores discovered domains.
type DomainService interface {
	// CreateDomain stores a domain. Storing the same domain twice for a
	// run is not an error.
	CreateDomain(ctx context.Context, domain *Domain) error

	// FindDomains returns domains in discovery order.
	FindDomains(ctx context.Context, filter DomainFilter) ([]*Domain, error)
}
