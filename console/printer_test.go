package console_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/festin"
	"github.com/fwojciec/festin/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultPrinter(t *testing.T) {
	t.Parallel()

	t.Run("prints summary and objects", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := console.NewResultPrinter(&buf, console.WithColor(false))

		err := p.HandleResult(context.Background(), &festin.BucketResult{
			Domain:     "assets.example.com",
			BucketName: "http://assets.example.com.s3.amazonaws.com",
			Objects:    []string{"a.txt", "dir/b.txt"},
		})

		require.NoError(t, err)
		assert.Equal(t, ""+
			"    *> 'assets.example.com' - Found 2 public objects\n"+
			"        -> assets.example.com/a.txt\n"+
			"        -> assets.example.com/dir/b.txt\n", buf.String())
	})

	t.Run("prints summary for empty bucket", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := console.NewResultPrinter(&buf, console.WithColor(false))

		err := p.HandleResult(context.Background(), &festin.BucketResult{Domain: "empty.example.com"})

		require.NoError(t, err)
		assert.Equal(t, "    *> 'empty.example.com' - Found 0 public objects\n", buf.String())
	})

	t.Run("colors output when enabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := console.NewResultPrinter(&buf, console.WithColor(true))

		require.NoError(t, p.HandleResult(context.Background(), &festin.BucketResult{Domain: "x.com"}))
		assert.Contains(t, buf.String(), "\x1b[")
	})
}

func TestDomainPrinter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := console.NewDomainPrinter(&buf, console.WithColor(false))

	require.NoError(t, p.HandleDomain(context.Background(), "cdn.example.com"))
	require.NoError(t, p.HandleDomain(context.Background(), "img.example.com"))

	assert.Equal(t, "    +> cdn.example.com\n    +> img.example.com\n", buf.String())
}
