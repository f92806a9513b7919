package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	noiseClassRe   = regexp.MustCompile(`(?i)(advertisement|ads|sponsored|sidebar)`)
	contentClassRe = regexp.MustCompile(`(?i)entry-content`)
	chromeClassRe  = regexp.MustCompile(`(?i)(sidebar|widget|footer|header)`)
)

// StripNoise removes navigation, script and style elements, and every
// element whose class names an advertisement, sponsored block or sidebar.
// The document is mutated in place.
func StripNoise(doc *goquery.Document) *goquery.Document {
	doc.Find("nav, script, style").Remove()
	findByClass(doc.Selection, "body *", noiseClassRe).Remove()
	return doc
}

// Articles returns the content block candidates of a stripped document
// in document order.
func Articles(doc *goquery.Document) *goquery.Selection {
	return doc.Find("article")
}

// ContentContainer returns the first entry-content <div> inside an article,
// or nil if the article has none.
func ContentContainer(article *goquery.Selection) *goquery.Selection {
	content := findByClass(article, "div", contentClassRe).First()
	if content.Length() == 0 {
		return nil
	}
	return content
}

// SanitizeContent removes site chrome that leaked into a content container:
// nav, footer, aside, script and style elements and any sidebar, widget,
// footer or header classed element.
func SanitizeContent(content *goquery.Selection) *goquery.Selection {
	content.Find("nav, footer, aside, script, style").Remove()
	findByClass(content, "*", chromeClassRe).Remove()
	return content
}
