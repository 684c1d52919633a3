package mock

import (
	"context"

	"github.com/fwojciec/festin"
)

var _ festin.RunService = (*RunService)(nil)

// RunService is a mock implementation of festin.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *festin.Run) error
	FinishRunFn func(ctx context.Context, id string) error
	FindRunsFn  func(ctx context.Context, filter festin.RunFilter) ([]*festin.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *festin.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, id string) error {
	return s.FinishRunFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter festin.RunFilter) ([]*festin.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

var _ festin.BucketService = (*BucketService)(nil)

// BucketService is a mock implementation of festin.BucketService.
type BucketService struct {
	CreateBucketFn func(ctx context.Context, bucket *festin.Bucket) error
	FindBucketsFn  func(ctx context.Context, filter festin.BucketFilter) ([]*festin.Bucket, error)
}

func (s *BucketService) CreateBucket(ctx context.Context, bucket *festin.Bucket) error {
	return s.CreateBucketFn(ctx, bucket)
}

func (s *BucketService) FindBuckets(ctx context.Context, filter festin.BucketFilter) ([]*festin.Bucket, error) {
	return s.FindBucketsFn(ctx, filter)
}

var _ festin.DomainService = (*DomainService)(nil)

// DomainService is a mock implementation of festin.DomainService.
type DomainService struct {
	CreateDomainFn func(ctx context.Context, domain *festin.Domain) error
	FindDomainsFn  func(ctx context.Context, filter festin.DomainFilter) ([]*festin.Domain, error)
}

func (s *DomainService) CreateDomain(ctx context.Context, domain *festin.Domain) error {
	return s.CreateDomainFn(ctx, domain)
}

func (s *DomainService) FindDomains(ctx context.Context, filter festin.DomainFilter) ([]*festin.Domain, error) {
	return s.FindDomainsFn(ctx, filter)
}
