package mock

import (
	"context"

	"github.com/fwojciec/festin"
)

var _ festin.Indexer = (*Indexer)(nil)

// Indexer is a mock implementation of festin.Indexer.
type Indexer struct {
	IndexFn func(ctx context.Context, bucketName, objectPath string, content []byte) error
}

func (i *Indexer) Index(ctx context.Context, bucketName, objectPath string, content []byte) error {
	return i.IndexFn(ctx, bucketName, objectPath, content)
}
