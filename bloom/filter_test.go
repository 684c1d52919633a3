package bloom_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/festin/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("cdn.example.com"))

	f.Add("cdn.example.com")

	assert.True(t, f.Test("cdn.example.com"))
	assert.False(t, f.Test("img.example.com"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("a.example.com")
	f.Add("b.example.com")
	f.Add("c.example.com")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	f.Add("bucket.s3.amazonaws.com")
	countAfterFirst := f.EstimatedCount()

	f.Add("bucket.s3.amazonaws.com")
	f.Add("bucket.s3.amazonaws.com")

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test("bucket.s3.amazonaws.com"))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("added-%d.example.com", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("missing-%d.example.com", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.001)

	assert.False(t, f.TestAndAdd("http://b.example.com/a.txt"))
	assert.True(t, f.TestAndAdd("http://b.example.com/a.txt"))
	assert.True(t, f.Test("http://b.example.com/a.txt"))
}

func TestFilter_TestAndAdd_admits_one_concurrent_caller(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.001)

	var fresh atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			if !f.TestAndAdd("http://b.example.com/dump.sql") {
				fresh.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), fresh.Load())
}
