// Package goquery implements the HTML side of the recovery pipeline on top of
// goquery: boilerplate removal, content block location and field extraction.
package goquery

import (
	"net/url"
	"path"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wprecover"
)

// Page is one content block together with the document it came from.
// Rules resolve fields from a Page.
type Page struct {
	// Doc is the whole stripped document.
	Doc *goquery.Document

	// Article is the content block (the <article> element).
	Article *goquery.Selection

	// Content is the sanitized entry-content container inside Article.
	Content *goquery.Selection

	// Path is the slash-separated document path.
	Path string

	// Type is the block's classification.
	Type wprecover.PostType

	// Slug is the URL-decoded name of the document's directory.
	Slug string
}

// DirSlug returns the URL-decoded last directory segment of a document path.
// Undecodable segments are returned as-is.
func DirSlug(docPath string) string {
	dir := path.Base(path.Dir(docPath))
	if decoded, err := url.PathUnescape(dir); err == nil {
		return decoded
	}
	return dir
}

// findByClass returns the elements of sel matching selector whose class
// attribute matches re.
func findByClass(sel *goquery.Selection, selector string, re *regexp.Regexp) *goquery.Selection {
	return sel.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classMatches(s, re)
	})
}

func classMatches(s *goquery.Selection, re *regexp.Regexp) bool {
	class, ok := s.Attr("class")
	return ok && re.MatchString(class)
}
