package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/wprecover"
	"github.com/fwojciec/wprecover/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements wprecover.Extractor at compile time.
var _ wprecover.Extractor = (*goquery.Extractor)(nil)

var fixedNow = func() time.Time {
	return time.Date(2024, 3, 9, 8, 7, 6, 0, time.UTC)
}

func extract(t *testing.T, html, docPath string) *wprecover.ExtractResult {
	t.Helper()

	e := goquery.NewExtractor(goquery.WithClock(fixedNow))
	result, err := e.Extract(&wprecover.Document{Path: docPath, HTML: html})
	require.NoError(t, err)
	return result
}

func extractOne(t *testing.T, html, docPath string) *wprecover.Extraction {
	t.Helper()

	result := extract(t, html, docPath)
	require.Len(t, result.Extractions, 1)
	return result.Extractions[0]
}

func fallbackRule(ext *wprecover.Extraction, field string) string {
	for _, fb := range ext.Fallbacks {
		if fb.Field == field {
			return fb.Rule
		}
	}
	return ""
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts a complete post", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Spring meeting | Rakuyukai</title>
<meta property="article:published_time" content="2012-05-01T09:30:00+09:00">
</head>
<body>
<nav><a href="/">Home</a></nav>
<article class="post-1 post type-post status-publish">
	<header class="entry-header"><h1 class="entry-title">Spring meeting</h1></header>
	<div class="entry-content">
		<p>We met in May.</p>
		<a href="https://example.org/wp-content/uploads/2012/05/photo.jpg"><img src="https://example.org/wp-content/uploads/2012/05/photo-300x200.jpg"></a>
	</div>
	<footer class="entry-footer">
		<a href="https://example.org/category/news/" rel="category">お知らせ</a>
		<a href="https://example.org/tag/spring/" rel="tag">spring</a>
	</footer>
</article>
</body>
</html>`

		ext := extractOne(t, html, "www.example.org/2012/05/spring/index.html")

		assert.Equal(t, wprecover.PostTypePost, ext.Type)
		assert.Equal(t, "Spring meeting", ext.Title)
		assert.Equal(t, "2012-05-01 09:30:00", ext.Date)
		assert.Equal(t, []string{"お知らせ"}, ext.Categories)
		assert.Equal(t, []string{"spring"}, ext.Tags)
		assert.Contains(t, ext.Body, "We met in May.")
		assert.Contains(t, ext.Body, `class="entry-content"`)
		require.Len(t, ext.Media, 1)
		assert.Equal(t, "https://example.org/wp-content/uploads/2012/05/photo-300x200.jpg", ext.Media[0].Src)
		assert.Equal(t, "https://example.org/wp-content/uploads/2012/05/photo.jpg", ext.Media[0].CanonicalSrc)
		assert.Equal(t, "spring", ext.Slug)
		assert.Equal(t, "www.example.org/2012/05/spring/index.html", ext.SourcePath)
		assert.Empty(t, ext.Fallbacks)
	})

	t.Run("reports a document without article blocks", func(t *testing.T) {
		t.Parallel()

		result := extract(t, `<html><body><div>Static page</div></body></html>`, "www.example.org/about/index.html")

		assert.Empty(t, result.Extractions)
		require.Len(t, result.Skips, 1)
		assert.Equal(t, wprecover.SkipNoArticle, result.Skips[0].Reason)
		assert.Equal(t, "www.example.org/about/index.html", result.Skips[0].Path)
	})

	t.Run("skips articles without a content container", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article class="type-post"><div class="summary"><p>Excerpt only</p></div></article>
<article class="type-post"><div class="entry-content"><p>Full text</p></div></article>
</body></html>`

		result := extract(t, html, "www.example.org/2012/05/a/index.html")

		require.Len(t, result.Extractions, 1)
		assert.Contains(t, result.Extractions[0].Body, "Full text")
		require.Len(t, result.Skips, 1)
		assert.Equal(t, wprecover.SkipNoContent, result.Skips[0].Reason)
		assert.Equal(t, "article 1", result.Skips[0].Detail)
	})

	t.Run("sanitizes the body", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article class="type-post"><div class="entry-content">
<p>Keep me</p>
<aside>Related</aside>
<div class="sharedaddy widget">Share</div>
<footer>Posted in news</footer>
<script>track()</script>
</div></article></body></html>`

		ext := extractOne(t, html, "www.example.org/2012/05/a/index.html")

		assert.Contains(t, ext.Body, "Keep me")
		assert.NotContains(t, ext.Body, "Related")
		assert.NotContains(t, ext.Body, "Share")
		assert.NotContains(t, ext.Body, "Posted in news")
		assert.NotContains(t, ext.Body, "track()")
	})

	t.Run("produces identical bodies for identical content", func(t *testing.T) {
		t.Parallel()

		first := `<html><head><title>Snapshot A</title></head><body><article class="type-post">
<div class="entry-content"><p>Same text</p></div></article></body></html>`
		second := `<html><head><title>Snapshot B</title><meta property="article:published_time" content="2013-01-01"></head><body><article class="type-post">
<div class="entry-content"><p>Same text</p></div></article></body></html>`

		a := extractOne(t, first, "mirror/20120101000000/www.example.org/a/index.html")
		b := extractOne(t, second, "mirror/20130101000000/www.example.org/a/index.html")

		assert.Equal(t, a.Body, b.Body)
		assert.Equal(t, wprecover.ContentIdentity(a.Body), wprecover.ContentIdentity(b.Body))
	})

	t.Run("records fallbacks", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Notice | Site</title></head><body>
<article><div class="entry-content"><p>Body</p></div></article></body></html>`

		ext := extractOne(t, html, "www.example.org/2012/05/notice/index.html")

		assert.Equal(t, "path", fallbackRule(ext, wprecover.FieldType))
		assert.Equal(t, "document title", fallbackRule(ext, wprecover.FieldTitle))
		assert.Equal(t, goquery.DateRulePathMonth, fallbackRule(ext, wprecover.FieldDate))
	})

	t.Run("marks the current time date as degraded", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article class="type-post"><div class="entry-content"><p>Body</p></div></article></body></html>`

		ext := extractOne(t, html, "www.example.org/misc/index.html")

		assert.Equal(t, "2024-03-09 08:07:06", ext.Date)
		require.NotEmpty(t, ext.Fallbacks)
		last := ext.Fallbacks[len(ext.Fallbacks)-1]
		assert.Equal(t, wprecover.FieldDate, last.Field)
		assert.True(t, last.Degraded)
	})
}
