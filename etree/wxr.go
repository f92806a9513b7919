// Package etree renders recovered records as a WordPress eXtended RSS
// (WXR 1.2) document using beevik/etree.
package etree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/wprecover"
)

// Ensure Serializer implements wprecover.Serializer at compile time.
var _ wprecover.Serializer = (*Serializer)(nil)

// WXRVersion is the export format version written to the channel.
const WXRVersion = "1.2"

// Author is the login every recovered item is attributed to.
const Author = "admin"

var namespaces = []struct{ prefix, uri string }{
	{"excerpt", "http://wordpress.org/export/1.2/excerpt/"},
	{"content", "http://purl.org/rss/1.0/modules/content/"},
	{"wfw", "http://wellformedweb.org/CommentAPI/"},
	{"dc", "http://purl.org/dc/elements/1.1/"},
	{"wp", "http://wordpress.org/export/1.2/"},
}

// Serializer writes WXR documents.
type Serializer struct {
	indent int
}

// NewSerializer creates a Serializer that indents nested elements by
// indent spaces.
func NewSerializer(indent int) *Serializer {
	return &Serializer{indent: indent}
}

// Serialize writes the channel header, the site's term declarations, one
// item per record and, after each record, one attachment item per media
// attachment.
func (s *Serializer) Serialize(w io.Writer, channel *wprecover.Channel, records []*wprecover.PostRecord) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	for _, ns := range namespaces {
		rss.CreateAttr("xmlns:"+ns.prefix, ns.uri)
	}

	ch := rss.CreateElement("channel")
	ch.CreateElement("title").SetText(channel.Title)
	ch.CreateElement("link").SetText(channel.Link)
	ch.CreateElement("description").SetText(channel.Description)
	ch.CreateElement("wp:wxr_version").SetText(WXRVersion)
	ch.CreateElement("wp:base_site_url").SetText(channel.Link)
	ch.CreateElement("wp:base_blog_url").SetText(channel.Link)

	writeTerms(ch, records)

	for _, rec := range records {
		writeItem(ch, rec)
		for _, att := range rec.Media {
			writeAttachment(ch, att)
		}
	}

	doc.Indent(s.indent)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write WXR: %w", err)
	}
	return nil
}

// writeTerms declares every distinct category and tag in order of first use.
func writeTerms(ch *etree.Element, records []*wprecover.PostRecord) {
	termID := 0
	seenCategories := make(map[string]bool)
	for _, rec := range records {
		for _, term := range rec.Categories {
			if seenCategories[term.Slug] {
				continue
			}
			seenCategories[term.Slug] = true
			termID++

			cat := ch.CreateElement("wp:category")
			cat.CreateElement("wp:term_id").SetText(strconv.Itoa(termID))
			cdata(cat.CreateElement("wp:category_nicename"), term.Slug)
			cdata(cat.CreateElement("wp:category_parent"), "")
			cdata(cat.CreateElement("wp:cat_name"), term.Name)
		}
	}

	seenTags := make(map[string]bool)
	for _, rec := range records {
		for _, term := range rec.Tags {
			if seenTags[term.Slug] {
				continue
			}
			seenTags[term.Slug] = true
			termID++

			tag := ch.CreateElement("wp:tag")
			tag.CreateElement("wp:term_id").SetText(strconv.Itoa(termID))
			cdata(tag.CreateElement("wp:tag_slug"), term.Slug)
			cdata(tag.CreateElement("wp:tag_name"), term.Name)
		}
	}
}

func writeItem(ch *etree.Element, rec *wprecover.PostRecord) {
	item := ch.CreateElement("item")
	cdata(item.CreateElement("title"), rec.Title)
	item.CreateElement("link").SetText(rec.GUID)
	item.CreateElement("pubDate").SetText(pubDate(rec.Date))
	cdata(item.CreateElement("dc:creator"), Author)
	guid := item.CreateElement("guid")
	guid.CreateAttr("isPermaLink", "false")
	guid.SetText(rec.GUID)
	item.CreateElement("description")
	cdata(item.CreateElement("content:encoded"), rec.Body)
	cdata(item.CreateElement("excerpt:encoded"), "")
	item.CreateElement("wp:post_id").SetText(strconv.Itoa(rec.ID))
	cdata(item.CreateElement("wp:post_date"), rec.Date)
	cdata(item.CreateElement("wp:post_date_gmt"), rec.Date)
	cdata(item.CreateElement("wp:comment_status"), "open")
	cdata(item.CreateElement("wp:ping_status"), "open")
	cdata(item.CreateElement("wp:post_name"), rec.Slug)
	cdata(item.CreateElement("wp:status"), "publish")
	item.CreateElement("wp:post_parent").SetText("0")
	item.CreateElement("wp:menu_order").SetText("0")
	cdata(item.CreateElement("wp:post_type"), string(rec.Type))
	cdata(item.CreateElement("wp:post_password"), "")
	item.CreateElement("wp:is_sticky").SetText("0")

	for _, term := range rec.Categories {
		cat := item.CreateElement("category")
		cat.CreateAttr("domain", "category")
		cat.CreateAttr("nicename", term.Slug)
		cdata(cat, term.Name)
	}
	for _, term := range rec.Tags {
		tag := item.CreateElement("category")
		tag.CreateAttr("domain", "post_tag")
		tag.CreateAttr("nicename", term.Slug)
		cdata(tag, term.Name)
	}
	for _, att := range rec.Media {
		item.CreateElement("wp:attachment_url").SetText(att.URL)
	}
}

func writeAttachment(ch *etree.Element, att *wprecover.MediaAttachment) {
	item := ch.CreateElement("item")
	cdata(item.CreateElement("title"), att.Title)
	item.CreateElement("link").SetText(att.URL)
	item.CreateElement("pubDate").SetText(pubDate(att.Date))
	cdata(item.CreateElement("dc:creator"), Author)
	guid := item.CreateElement("guid")
	guid.CreateAttr("isPermaLink", "false")
	guid.SetText(att.URL)
	item.CreateElement("description")
	cdata(item.CreateElement("content:encoded"), "")
	cdata(item.CreateElement("excerpt:encoded"), "")
	item.CreateElement("wp:post_id").SetText(strconv.Itoa(att.ID))
	cdata(item.CreateElement("wp:post_date"), att.Date)
	cdata(item.CreateElement("wp:post_date_gmt"), att.Date)
	cdata(item.CreateElement("wp:comment_status"), "closed")
	cdata(item.CreateElement("wp:ping_status"), "closed")
	cdata(item.CreateElement("wp:post_name"), att.Title)
	cdata(item.CreateElement("wp:status"), "inherit")
	item.CreateElement("wp:post_parent").SetText(strconv.Itoa(att.ParentID))
	item.CreateElement("wp:menu_order").SetText("0")
	cdata(item.CreateElement("wp:post_type"), "attachment")
	cdata(item.CreateElement("wp:post_password"), "")
	item.CreateElement("wp:is_sticky").SetText("0")
	item.CreateElement("wp:attachment_url").SetText(att.URL)
}

// cdata appends text to el as CDATA. A "]]>" inside text is split across
// two sections so the document stays well-formed.
func cdata(el *etree.Element, text string) {
	parts := strings.Split(text, "]]>")
	for i, part := range parts {
		if i < len(parts)-1 {
			part += "]]"
		}
		if i > 0 {
			part = ">" + part
		}
		el.CreateCData(part)
	}
}

// pubDate renders an export date in RSS form. Dates that are not in
// wprecover.DateLayout are written unchanged.
func pubDate(date string) string {
	t, err := time.Parse(wprecover.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(time.RFC1123Z)
}
