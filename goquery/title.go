package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wprecover"
)

// Untitled is the title of a block no rule could name.
const Untitled = "Untitled"

var entryTitleRe = regexp.MustCompile(`(?i)entry-title`)

// TitleRule resolves a title from a page or reports no match.
type TitleRule struct {
	Name    string
	Resolve func(p *Page) (string, bool)
}

// TitleRules is the title cascade, strongest signal first.
var TitleRules = []TitleRule{
	{Name: "header entry-title", Resolve: headerEntryTitle},
	{Name: "document title", Resolve: documentTitle},
	{Name: "content heading", Resolve: contentHeading},
	{Name: "directory name", Resolve: directoryTitle},
	{Name: "untitled", Resolve: func(*Page) (string, bool) { return Untitled, true }},
}

// ResolveTitle applies rules in order and returns the first title found
// together with the name of the rule that produced it.
func ResolveTitle(p *Page, rules []TitleRule) (title, rule string) {
	for _, r := range rules {
		if t, ok := r.Resolve(p); ok {
			return t, r.Name
		}
	}
	return Untitled, ""
}

func headerEntryTitle(p *Page) (string, bool) {
	header := p.Article.Find("header").First()
	if header.Length() == 0 {
		return "", false
	}
	return nonEmptyText(findByClass(header, "h1", entryTitleRe).First())
}

// documentTitle uses <title>, cut at the first "|" which usually
// separates the post title from the site name.
func documentTitle(p *Page) (string, bool) {
	title := strings.TrimSpace(p.Doc.Find("title").First().Text())
	if i := strings.Index(title, "|"); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	return title, title != ""
}

func contentHeading(p *Page) (string, bool) {
	if t, ok := nonEmptyText(findByClass(p.Content, "h1", entryTitleRe).First()); ok {
		return t, true
	}
	return nonEmptyText(p.Content.Find("h1, h2").First())
}

func directoryTitle(p *Page) (string, bool) {
	if p.Type != wprecover.PostTypePage {
		return "", false
	}
	return p.Slug, p.Slug != ""
}

func nonEmptyText(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	text := strings.TrimSpace(sel.Text())
	return text, text != ""
}
