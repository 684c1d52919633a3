package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/festin"
)

// Ensure LoggingResolver implements festin.Resolver.
var _ festin.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with debug logging.
type LoggingResolver struct {
	next   festin.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next festin.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// ResolveCNAME delegates to the wrapped resolver and logs the lookup.
func (r *LoggingResolver) ResolveCNAME(ctx context.Context, name string) (targets []string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("cname lookup",
			"name", name,
			"targets", targets,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolveCNAME(ctx, name)
}

// Ensure LoggingIndexer implements festin.Indexer.
var _ festin.Indexer = (*LoggingIndexer)(nil)

// LoggingIndexer wraps an Indexer with logging.
type LoggingIndexer struct {
	next   festin.Indexer
	logger *slog.Logger
}

// NewLoggingIndexer creates a new LoggingIndexer.
func NewLoggingIndexer(next festin.Indexer, logger *slog.Logger) *LoggingIndexer {
	return &LoggingIndexer{next: next, logger: logger}
}

// Index delegates to the wrapped indexer and logs the document.
func (i *LoggingIndexer) Index(ctx context.Context, bucketName, objectPath string, content []byte) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("index",
			"bucket", bucketName,
			"object", objectPath,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Index(ctx, bucketName, objectPath, content)
}
