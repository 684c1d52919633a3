package sqlite

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/fwojciec/festin"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ festin.BucketService = (*BucketService)(nil)

// BucketService implements festin.BucketService using SQLite.
type BucketService struct {
	db *DB
}

// NewBucketService creates a new BucketService.
func NewBucketService(db *DB) *BucketService {
	return &BucketService{db: db}
}

// CreateBucket stores a found bucket.
func (s *BucketService) CreateBucket(ctx context.Context, bucket *festin.Bucket) error {
	if bucket.RunID == "" {
		return festin.Errorf(festin.EINVALID, "bucket requires a run")
	}
	if bucket.BucketName == "" {
		return festin.Errorf(festin.EINVALID, "bucket name required")
	}

	objects, err := json.Marshal(bucket.Objects)
	if err != nil {
		return err
	}

	bucket.ID = uuid.New().String()
	bucket.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO buckets (id, run_id, domain, bucket_name, objects, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, bucket.ID, bucket.RunID, bucket.Domain, bucket.BucketName, string(objects),
		bucket.CreatedAt.Format(time.RFC3339))

	return err
}

// FindBuckets retrieves buckets matching the filter in insertion order.
func (s *BucketService) FindBuckets(ctx context.Context, filter festin.BucketFilter) ([]*festin.Bucket, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, domain, bucket_name, objects, created_at FROM buckets WHERE 1=1")
	whereEqual(&query, &args, "run_id", filter.RunID)
	whereEqual(&query, &args, "bucket_name", filter.BucketName)
	query.WriteString(" ORDER BY rowid")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []*festin.Bucket
	for rows.Next() {
		var b festin.Bucket
		var objects, createdAt string
		if err := rows.Scan(&b.ID, &b.RunID, &b.Domain, &b.BucketName, &objects, &createdAt); err != nil {
			return nil, err
		}
		if b.Objects, err = decodeList(objects, "objects"); err != nil {
			return nil, err
		}
		if b.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		buckets = append(buckets, &b)
	}

	return buckets, rows.Err()
}
