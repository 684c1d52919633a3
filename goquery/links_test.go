package goquery_test

import (
	"testing"

	"github.com/fwojciec/festin/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractAttributes(t *testing.T) {
	t.Parallel()

	t.Run("returns hrefs before srcs in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<link rel="stylesheet" href="https://static.example.com/site.css">
<script src="https://cdn.example.net/app.js"></script>
</head><body>
<a href="https://blog.example.org/post">post</a>
<img src="//img.example.io/logo.png">
<a href="/relative">rel</a>
</body></html>`

		values, err := goquery.NewLinkExtractor().ExtractAttributes([]byte(html), "href", "src")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://static.example.com/site.css",
			"https://blog.example.org/post",
			"/relative",
			"https://cdn.example.net/app.js",
			"//img.example.io/logo.png",
		}, values)
	})

	t.Run("skips empty attributes", func(t *testing.T) {
		t.Parallel()

		html := `<a href="">x</a><a href="  ">y</a><a>z</a>`

		values, err := goquery.NewLinkExtractor().ExtractAttributes([]byte(html), "href")

		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("tolerates broken markup", func(t *testing.T) {
		t.Parallel()

		html := `<div><a href="http://a.example.com">a<div><img src="http://b.example.com/x.png"></div>`

		values, err := goquery.NewLinkExtractor().ExtractAttributes([]byte(html), "href", "src")

		require.NoError(t, err)
		assert.Equal(t, []string{"http://a.example.com", "http://b.example.com/x.png"}, values)
	})
}
