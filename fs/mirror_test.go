package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wprecover"
	"github.com/fwojciec/wprecover/fs"
	"github.com/fwojciec/wprecover/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files (slash-separated, relative to root) with their
// path as content.
func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()

	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0644))
	}
}

func TestMirror_Sites(t *testing.T) {
	t.Parallel()

	t.Run("returns the root site and marked subdirectories", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFiles(t, root,
			"index.html",
			"raku2/wp-login.php",
			"raku1/wp-login.php",
			"images/logo.png",
		)

		sites, err := fs.NewMirror(root, "https://example.org/raku/").Sites()

		require.NoError(t, err)
		assert.Equal(t, []*wprecover.Site{
			{Subdir: "", URL: "https://example.org/raku"},
			{Subdir: "raku1", URL: "https://example.org/raku/raku1"},
			{Subdir: "raku2", URL: "https://example.org/raku/raku2"},
		}, sites)
	})

	t.Run("fails for a missing archive root", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewMirror(filepath.Join(t.TempDir(), "missing"), "https://example.org").Sites()

		assert.Equal(t, wprecover.EINVALID, wprecover.ErrorCode(err))
	})
}

func TestMirror_Documents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"index.html",
		"2012/05/b/index.html",
		"2012/05/a/index.html",
		"style.css",
		"raku2/wp-login.php",
		"raku2/index.html",
		"raku2/2013/01/c/index.html",
	)
	m := fs.NewMirror(root, "https://example.org")

	t.Run("lists the root site without sub-sites", func(t *testing.T) {
		t.Parallel()

		docs, err := m.Documents(&wprecover.Site{Subdir: ""})

		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.ToSlash(filepath.Join(root, "2012/05/a/index.html")),
			filepath.ToSlash(filepath.Join(root, "2012/05/b/index.html")),
			filepath.ToSlash(filepath.Join(root, "index.html")),
		}, docs)
	})

	t.Run("lists a sub-site", func(t *testing.T) {
		t.Parallel()

		docs, err := m.Documents(&wprecover.Site{Subdir: "raku2"})

		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.ToSlash(filepath.Join(root, "raku2/2013/01/c/index.html")),
			filepath.ToSlash(filepath.Join(root, "raku2/index.html")),
		}, docs)
	})

	t.Run("reads listed documents", func(t *testing.T) {
		t.Parallel()

		docs, err := m.Documents(&wprecover.Site{Subdir: "raku2"})
		require.NoError(t, err)

		raw, err := m.ReadDocument(docs[1])

		require.NoError(t, err)
		assert.Equal(t, "raku2/index.html", string(raw))
	})
}

// Changes the working directory, so it cannot run in parallel.
func TestMirror_Documents_RelativeRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2012", "05", "hello"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2012", "05", "hello", "index.html"), []byte(
		`<html><body><article class="post type-post"><div class="entry-content"><p>Hello</p></div></article></body></html>`,
	), 0644))
	t.Chdir(dir)

	m := fs.NewMirror(".", "https://example.org")
	docs, err := m.Documents(&wprecover.Site{Subdir: ""})
	require.NoError(t, err)
	require.Equal(t, []string{"2012/05/hello/index.html"}, docs)

	raw, err := m.ReadDocument(docs[0])
	require.NoError(t, err)

	// The year directory directly under the root still dates the post.
	result, err := goquery.NewExtractor().Extract(&wprecover.Document{Path: docs[0], HTML: string(raw)})
	require.NoError(t, err)
	require.Len(t, result.Extractions, 1)
	assert.Equal(t, "2012-05-01 00:00:00", result.Extractions[0].Date)
	assert.Contains(t, result.Extractions[0].Fallbacks, wprecover.Fallback{Field: wprecover.FieldDate, Rule: goquery.DateRulePathMonth})
}

func TestMirror_LocateMedia(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"wp-content/uploads/2012/05/photo.jpg",
		"wp-content/uploads/2012/05/exact-150x150.jpg",
		"wp-content/uploads/2012/05/%E5%86%99%E7%9C%9F.jpg",
		"wp-content/uploads/2012/06/名簿.pdf",
		"raku2/wp-login.php",
		"raku2/wp-content/uploads/2013/01/flyer.png",
	)
	m := fs.NewMirror(root, "https://example.org")
	rootSite := &wprecover.Site{}
	uploads := filepath.Join(root, "wp-content", "uploads")

	t.Run("finds the exact file", func(t *testing.T) {
		t.Parallel()

		match, err := m.LocateMedia(rootSite, "2012/05/exact-150x150.jpg")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(uploads, "2012", "05", "exact-150x150.jpg"), match.LocalPath)
		assert.False(t, match.Resized)
	})

	t.Run("falls back from a resized name to the original", func(t *testing.T) {
		t.Parallel()

		match, err := m.LocateMedia(rootSite, "2012/05/photo-300x200.jpg")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(uploads, "2012", "05", "photo.jpg"), match.LocalPath)
		assert.True(t, match.Resized)
	})

	t.Run("matches percent-encoded names on disk", func(t *testing.T) {
		t.Parallel()

		match, err := m.LocateMedia(rootSite, "2012/05/%e5%86%99%e7%9c%9f.jpg")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(uploads, "2012", "05", "%E5%86%99%E7%9C%9F.jpg"), match.LocalPath)
	})

	t.Run("matches decoded names on disk", func(t *testing.T) {
		t.Parallel()

		match, err := m.LocateMedia(rootSite, "2012/06/%E5%90%8D%E7%B0%BF.pdf")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(uploads, "2012", "06", "名簿.pdf"), match.LocalPath)
	})

	t.Run("looks inside the site's uploads", func(t *testing.T) {
		t.Parallel()

		match, err := m.LocateMedia(&wprecover.Site{Subdir: "raku2"}, "2013/01/flyer.png")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "raku2", "wp-content", "uploads", "2013", "01", "flyer.png"), match.LocalPath)
	})

	t.Run("reports a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := m.LocateMedia(rootSite, "2012/05/missing-300x200.jpg")

		assert.Equal(t, wprecover.ENOTFOUND, wprecover.ErrorCode(err))
	})

	t.Run("reports a missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := m.LocateMedia(rootSite, "1999/01/photo.jpg")

		assert.Equal(t, wprecover.ENOTFOUND, wprecover.ErrorCode(err))
	})
}
