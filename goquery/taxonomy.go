package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Taxonomy returns the category and tag names linked from the article's
// footers, in order of appearance. Duplicates are kept.
func Taxonomy(article *goquery.Selection) (categories, tags []string) {
	article.Find("footer").Each(func(_ int, footer *goquery.Selection) {
		categories = append(categories, linkTexts(footer, "/category/")...)
		tags = append(tags, linkTexts(footer, "/tag/")...)
	})
	return categories, tags
}

func linkTexts(sel *goquery.Selection, hrefPart string) []string {
	var texts []string
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, hrefPart) {
			return
		}
		texts = append(texts, strings.TrimSpace(a.Text()))
	})
	return texts
}
