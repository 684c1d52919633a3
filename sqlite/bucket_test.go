package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/festin"
	"github.com/fwojciec/festin/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketService_CreateBucket(t *testing.T) {
	t.Parallel()

	t.Run("stores bucket with objects", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBucketService(db)
		run := createRun(t, db, "bucket.s3.amazonaws.com")

		bucket := &festin.Bucket{
			RunID:      run.ID,
			Domain:     "bucket.s3.amazonaws.com",
			BucketName: "http://bucket.s3.amazonaws.com",
			Objects:    []string{"a.txt", "b.txt"},
		}
		require.NoError(t, svc.CreateBucket(context.Background(), bucket))
		assert.NotEmpty(t, bucket.ID)

		buckets, err := svc.FindBuckets(context.Background(), festin.BucketFilter{RunID: &run.ID})
		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, bucket.BucketName, buckets[0].BucketName)
		assert.Equal(t, []string{"a.txt", "b.txt"}, buckets[0].Objects)
	})

	t.Run("requires run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewBucketService(db).CreateBucket(context.Background(), &festin.Bucket{BucketName: "b"})

		assert.Equal(t, festin.EINVALID, festin.ErrorCode(err))
	})

	t.Run("rejects unknown run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewBucketService(db).CreateBucket(context.Background(), &festin.Bucket{RunID: "missing", BucketName: "b"})

		assert.Error(t, err, "foreign key constraint")
	})
}

func TestBucketService_FindBuckets(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewBucketService(db)
	runA := createRun(t, db, "a.com")
	runB := createRun(t, db, "b.com")

	consumerA := festin.RunResults(svc, runA.ID)
	consumerB := festin.RunResults(svc, runB.ID)
	ctx := context.Background()
	require.NoError(t, consumerA.HandleResult(ctx, &festin.BucketResult{Domain: "a.com", BucketName: "http://x", Objects: []string{"1"}}))
	require.NoError(t, consumerA.HandleResult(ctx, &festin.BucketResult{Domain: "a.com", BucketName: "http://y", Objects: []string{"2"}}))
	require.NoError(t, consumerB.HandleResult(ctx, &festin.BucketResult{Domain: "b.com", BucketName: "http://x", Objects: []string{"3"}}))

	all, err := svc.FindBuckets(ctx, festin.BucketFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byRun, err := svc.FindBuckets(ctx, festin.BucketFilter{RunID: &runA.ID})
	require.NoError(t, err)
	require.Len(t, byRun, 2)
	assert.Equal(t, "http://x", byRun[0].BucketName)
	assert.Equal(t, "http://y", byRun[1].BucketName)

	name := "http://x"
	byName, err := svc.FindBuckets(ctx, festin.BucketFilter{BucketName: &name})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	page, err := svc.FindBuckets(ctx, festin.BucketFilter{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, []string{"3"}, page[0].Objects)
}

func TestBucketService_FindBuckets_offset_without_limit(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewBucketService(db)
	run := createRun(t, db, "a.com")

	consumer := festin.RunResults(svc, run.ID)
	ctx := context.Background()
	for _, obj := range []string{"1", "2", "3"} {
		require.NoError(t, consumer.HandleResult(ctx, &festin.BucketResult{Domain: "a.com", BucketName: "http://" + obj, Objects: []string{obj}}))
	}

	rest, err := svc.FindBuckets(ctx, festin.BucketFilter{Offset: 1})

	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "http://2", rest[0].BucketName)
	assert.Equal(t, "http://3", rest[1].BucketName)
}
