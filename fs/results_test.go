package fs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/festin"
	"github.com/fwojciec/festin/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsFile_round_trip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.jsonl")
	w, err := fs.OpenResultsFile(path)
	require.NoError(t, err)

	want := []*festin.BucketResult{
		{Domain: "bucket.s3.amazonaws.com", BucketName: "http://bucket.s3.amazonaws.com", Objects: []string{"a.txt", "b.txt"}},
		{Domain: "cdn.provider-s3-mirror.net", BucketName: "http://s3-mirror.net/cdn.provider", Objects: []string{"x/y z.csv"}},
	}
	for _, r := range want {
		require.NoError(t, w.HandleResult(context.Background(), r))
	}
	require.NoError(t, w.Close())

	got, err := fs.ReadResultsFile(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResultsFile_uses_wire_field_names(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.jsonl")
	w, err := fs.OpenResultsFile(path)
	require.NoError(t, err)

	require.NoError(t, w.HandleResult(context.Background(), &festin.BucketResult{Domain: "d", BucketName: "b", Objects: []string{"o"}}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"domain":"d","bucketName":"b","objects":["o"]}`+"\n", string(data))
}

func TestResultsFile_appends_to_existing_file(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.jsonl")
	for i := 0; i < 2; i++ {
		w, err := fs.OpenResultsFile(path)
		require.NoError(t, err)
		require.NoError(t, w.HandleResult(context.Background(), &festin.BucketResult{Domain: fmt.Sprint(i)}))
		require.NoError(t, w.Close())
	}

	got, err := fs.ReadResultsFile(path)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0", got[0].Domain)
	assert.Equal(t, "1", got[1].Domain)
}

func TestResultsFile_concurrent_writes_do_not_interleave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.jsonl")
	w, err := fs.OpenResultsFile(path)
	require.NoError(t, err)

	objects := make([]string, 200)
	for i := range objects {
		objects[i] = strings.Repeat("k", 50)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Go(func() {
			_ = w.HandleResult(context.Background(), &festin.BucketResult{Domain: fmt.Sprint(i), Objects: objects})
		})
	}
	wg.Wait()
	require.NoError(t, w.Close())

	got, err := fs.ReadResultsFile(path)

	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestReadResults_reports_malformed_line(t *testing.T) {
	t.Parallel()

	_, err := fs.ReadResults(strings.NewReader("{\"domain\":\"a\"}\n\nnot json\n"))

	require.Error(t, err)
	assert.Equal(t, festin.EPARSE, festin.ErrorCode(err))
	assert.Contains(t, festin.ErrorMessage(err), "line 3")
}
