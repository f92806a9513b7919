package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wprecover"
)

var yearSegmentRe = regexp.MustCompile(`(?:^|/)20\d{2}/`)

// Classify decides whether an article is a post or a page. The theme's
// type-page/type-post class wins; otherwise the path decides: a year segment
// means a post, a percent-encoded segment means a page. The second return
// value is false when the path heuristic was used.
func Classify(article *goquery.Selection, docPath string) (wprecover.PostType, bool) {
	switch {
	case article.HasClass("type-page"):
		return wprecover.PostTypePage, true
	case article.HasClass("type-post"):
		return wprecover.PostTypePost, true
	case yearSegmentRe.MatchString(docPath):
		return wprecover.PostTypePost, false
	case strings.Contains(docPath, "%"):
		return wprecover.PostTypePage, false
	}
	return wprecover.PostTypePost, false
}
