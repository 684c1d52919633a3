// Package redis implements festin.Indexer on a RediSearch full-text index.
package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/festin"
	"github.com/redis/go-redis/v9"
)

// Default index settings.
const (
	DefaultIndexName = "s3_index"
	DefaultKeyPrefix = "s3:doc:"
)

// Ensure Indexer implements festin.Indexer at compile time.
var _ festin.Indexer = (*Indexer)(nil)

// Indexer stores bucket objects as Redis hashes covered by a RediSearch
// index with bucket, filename and content text fields. Content carries
// the highest weight.
type Indexer struct {
	client    *redis.Client
	index     string
	keyPrefix string
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithIndexName sets the RediSearch index name.
func WithIndexName(name string) Option {
	return func(i *Indexer) {
		i.index = name
	}
}

// WithKeyPrefix sets the prefix of document hash keys.
func WithKeyPrefix(prefix string) Option {
	return func(i *Indexer) {
		i.keyPrefix = prefix
	}
}

// NewIndexer creates an Indexer on an existing client.
func NewIndexer(client *redis.Client, opts ...Option) *Indexer {
	i := &Indexer{
		client:    client,
		index:     DefaultIndexName,
		keyPrefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Dial creates an Indexer for a redis:// URL.
func Dial(rawURL string, opts ...Option) (*Indexer, error) {
	options, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, festin.Errorf(festin.EINVALID, "invalid index server %q: %v", rawURL, err)
	}
	return NewIndexer(redis.NewClient(options), opts...), nil
}

// Open checks the connection and creates the index. An existing index is
// reused.
func (i *Indexer) Open(ctx context.Context) error {
	if err := i.client.Ping(ctx).Err(); err != nil {
		return festin.Errorf(festin.ETRANSPORT, "index server unreachable: %v", err)
	}

	err := i.client.Do(ctx,
		"FT.CREATE", i.index,
		"ON", "HASH",
		"PREFIX", "1", i.keyPrefix,
		"SCHEMA",
		"bucket", "TEXT",
		"filename", "TEXT",
		"content", "TEXT", "WEIGHT", "5.0",
	).Err()
	if err != nil && !strings.Contains(err.Error(), "Index already exists") {
		return fmt.Errorf("create index %s: %w", i.index, err)
	}
	return nil
}

// Index stores one object. The document key is derived from the bucket
// and path, so indexing an object again overwrites it.
func (i *Indexer) Index(ctx context.Context, bucketName, objectPath string, content []byte) error {
	return i.client.HSet(ctx, i.Key(bucketName, objectPath),
		"bucket", bucketName,
		"filename", objectPath,
		"content", string(content),
	).Err()
}

// Key returns the hash key of an object's document.
func (i *Indexer) Key(bucketName, objectPath string) string {
	return fmt.Sprintf("%s%016x", i.keyPrefix, xxhash.Sum64String(bucketName+"/"+objectPath))
}

// Close closes the client.
func (i *Indexer) Close() error {
	return i.client.Close()
}
