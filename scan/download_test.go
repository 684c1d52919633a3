package scan_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/fwojciec/festin"
	"github.com/fwojciec/festin/mock"
	"github.com/fwojciec/festin/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG file for content sniffing.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48, 0x44, 0x52}

func TestObjectURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://bucket.s3.amazonaws.com/a.txt", scan.ObjectURL("http://bucket.s3.amazonaws.com", "a.txt"))
	assert.Equal(t, "http://s3.example.org/files/dir/my%20file.csv", scan.ObjectURL("http://s3.example.org/files/", "dir/my file.csv"))
}

func TestDownloader_HandleResult(t *testing.T) {
	t.Parallel()

	t.Run("indexes text objects and skips media", func(t *testing.T) {
		t.Parallel()

		objects := map[string]*festin.Response{
			"http://b.example.com/notes.txt": {StatusCode: 200, Body: []byte("secret notes")},
			"http://b.example.com/logo.png":  {StatusCode: 200, Body: pngHeader},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*festin.Response, error) {
				return objects[url], nil
			},
		}
		var mu sync.Mutex
		indexed := make(map[string]string)
		indexer := &mock.Indexer{
			IndexFn: func(_ context.Context, bucket, path string, content []byte) error {
				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, "http://b.example.com", bucket)
				indexed[path] = string(content)
				return nil
			},
		}
		d := &scan.Downloader{Fetcher: fetcher, Indexer: indexer}

		err := d.HandleResult(context.Background(), &festin.BucketResult{
			Domain:     "b.example.com",
			BucketName: "http://b.example.com",
			Objects:    []string{"notes.txt", "logo.png", "folder/"},
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"notes.txt": "secret notes"}, indexed)
	})

	t.Run("converts html objects to markdown", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*festin.Response, error) {
				return &festin.Response{
					StatusCode: 200,
					Header:     http.Header{"Content-Type": []string{"text/html"}},
					Body:       []byte("<html><body><nav>x</nav><p>Body</p></body></html>"),
				}, nil
			},
		}
		var got string
		d := &scan.Downloader{
			Fetcher: fetcher,
			Indexer: &mock.Indexer{
				IndexFn: func(_ context.Context, _, _ string, content []byte) error {
					got = string(content)
					return nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(string) (*festin.ExtractResult, error) {
					return &festin.ExtractResult{Title: "Index", ContentHTML: "<p>Body</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					assert.Equal(t, "<p>Body</p>", html)
					return "Body", nil
				},
			},
		}

		err := d.HandleResult(context.Background(), &festin.BucketResult{BucketName: "http://b.example.com", Objects: []string{"index.html"}})

		require.NoError(t, err)
		assert.Equal(t, "# Index\n\nBody", got)
	})

	t.Run("reports failed objects without stopping others", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*festin.Response, error) {
				if url == "http://b.example.com/private.txt" {
					return &festin.Response{StatusCode: 403}, nil
				}
				return &festin.Response{StatusCode: 200, Body: []byte("ok")}, nil
			},
		}
		var mu sync.Mutex
		var paths []string
		d := &scan.Downloader{
			Fetcher: fetcher,
			Indexer: &mock.Indexer{
				IndexFn: func(_ context.Context, _, path string, _ []byte) error {
					mu.Lock()
					defer mu.Unlock()
					paths = append(paths, path)
					return nil
				},
			},
			Concurrency: 1,
		}

		err := d.HandleResult(context.Background(), &festin.BucketResult{
			BucketName: "http://b.example.com",
			Objects:    []string{"private.txt", "public.txt"},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 objects")
		assert.Equal(t, []string{"public.txt"}, paths)
	})

	t.Run("bucket reported twice is indexed once", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		fetches := make(map[string]int)
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*festin.Response, error) {
				mu.Lock()
				defer mu.Unlock()
				fetches[url]++
				return &festin.Response{StatusCode: 200, Body: []byte("rows")}, nil
			},
		}
		var indexed []string
		d := &scan.Downloader{
			Fetcher: fetcher,
			Indexer: &mock.Indexer{
				IndexFn: func(_ context.Context, _, path string, _ []byte) error {
					mu.Lock()
					defer mu.Unlock()
					indexed = append(indexed, path)
					return nil
				},
			},
			Indexed:     scan.NewIndexedFilter(1000),
			Concurrency: 1,
		}
		first := &festin.BucketResult{Domain: "files.example.com", BucketName: "http://files.example.com", Objects: []string{"dump.sql"}}
		again := &festin.BucketResult{Domain: "cdn.example.com", BucketName: "http://files.example.com", Objects: []string{"dump.sql", "new.csv"}}

		require.NoError(t, d.HandleResult(context.Background(), first))
		require.NoError(t, d.HandleResult(context.Background(), again))

		assert.Equal(t, []string{"dump.sql", "new.csv"}, indexed)
		assert.Equal(t, map[string]int{
			"http://files.example.com/dump.sql": 1,
			"http://files.example.com/new.csv":  1,
		}, fetches)
	})
}
