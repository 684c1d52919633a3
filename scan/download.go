package scan

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/festin"
	"github.com/fwojciec/festin/bloom"
	"github.com/h2non/filetype"
	"golang.org/x/sync/errgroup"
)

// DefaultDownloadConcurrency caps concurrent object downloads per bucket.
const DefaultDownloadConcurrency = 20

// NewIndexedFilter returns a filter for Downloader.Indexed sized for n
// objects. At this rate roughly one object in ten thousand is wrongly
// skipped.
func NewIndexedFilter(n uint) *bloom.Filter {
	return bloom.NewFilter(n, 0.0001)
}

var _ festin.ResultConsumer = (*Downloader)(nil)

// Downloader fetches every object of a found bucket and hands its content
// to an Indexer. Media payloads are skipped. HTML objects are reduced to
// markdown when an Extractor and Converter are configured.
type Downloader struct {
	Fetcher festin.Fetcher
	Indexer festin.Indexer

	Extractor festin.Extractor
	Converter festin.Converter

	// Indexed, if set, remembers objects already handed to the Indexer so
	// a bucket reported again under the same name is not downloaded twice.
	Indexed *bloom.Filter

	Concurrency int
	Logger      *slog.Logger
}

// HandleResult implements festin.ResultConsumer. Individual object failures
// are logged; the returned error only summarises them.
func (d *Downloader) HandleResult(ctx context.Context, result *festin.BucketResult) error {
	logger := orDiscard(d.Logger).With("bucket", result.BucketName)

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultDownloadConcurrency
	}

	var failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	for _, key := range result.Objects {
		g.Go(func() error {
			if err := d.indexObject(ctx, logger, result.BucketName, key); err != nil {
				logger.Warn("index object failed", "object", key, "err", err)
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d objects failed to index", n, len(result.Objects))
	}
	return nil
}

func (d *Downloader) indexObject(ctx context.Context, logger *slog.Logger, bucketName, key string) error {
	if key == "" || strings.HasSuffix(key, "/") {
		return nil
	}

	objectURL := ObjectURL(bucketName, key)
	if d.Indexed != nil && d.Indexed.TestAndAdd(objectURL) {
		logger.Debug("skip indexed object", "object", key)
		return nil
	}

	resp, err := d.Fetcher.Fetch(ctx, objectURL)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return festin.Errorf(festin.ETRANSPORT, "unexpected status %d", resp.StatusCode)
	}
	if isMedia(resp.Body) {
		logger.Debug("skip media object", "object", key)
		return nil
	}

	return d.Indexer.Index(ctx, bucketName, key, d.content(logger, resp))
}

// content returns the text to index. HTML is converted to markdown; the raw
// body is used whenever conversion is not possible.
func (d *Downloader) content(logger *slog.Logger, resp *festin.Response) []byte {
	if d.Extractor == nil || d.Converter == nil || !strings.Contains(resp.ContentType(), "html") {
		return resp.Body
	}

	extracted, err := d.Extractor.Extract(string(resp.Body))
	if err != nil {
		logger.Debug("extract failed", "err", err)
		return resp.Body
	}
	markdown, err := d.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		logger.Debug("convert failed", "err", err)
		return resp.Body
	}
	if extracted.Title != "" {
		markdown = "# " + extracted.Title + "\n\n" + markdown
	}
	return []byte(markdown)
}

// ObjectURL joins a bucket URL and an object key, escaping the key path.
func ObjectURL(bucketName, key string) string {
	escaped := (&url.URL{Path: strings.TrimPrefix(key, "/")}).EscapedPath()
	return strings.TrimSuffix(bucketName, "/") + "/" + escaped
}

func isMedia(body []byte) bool {
	return filetype.IsImage(body) ||
		filetype.IsAudio(body) ||
		filetype.IsVideo(body) ||
		filetype.IsFont(body)
}
