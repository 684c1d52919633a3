package readability_test

import (
	"testing"

	"github.com/fwojciec/festin"
	"github.com/fwojciec/festin/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("keeps article and drops navigation", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Deploy Notes</title></head>
<body>
<nav><a href="/a">Nav Link Alpha</a><a href="/b">Nav Link Beta</a></nav>
<article>
<h1>Deploy Notes</h1>
<p>The nightly job uploads database dumps to the public assets bucket by mistake.</p>
<p>Rotate the credentials in the dump before the next release window opens.</p>
</article>
</body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Deploy Notes", result.Title)
		assert.Contains(t, result.ContentHTML, "database dumps")
		assert.NotContains(t, result.ContentHTML, "Nav Link Alpha")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract("")

		require.Error(t, err)
		assert.Equal(t, festin.EINVALID, festin.ErrorCode(err))
	})
}
