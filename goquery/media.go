package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wprecover"
)

// MediaRefs returns the image and video references of a content container
// in document order. When a media element is wrapped in a link into the
// uploads tree, the link target becomes the canonical source.
func MediaRefs(content *goquery.Selection) []wprecover.MediaRef {
	var refs []wprecover.MediaRef
	content.Find("img, video").Each(func(_ int, media *goquery.Selection) {
		src, _ := media.Attr("src")
		if src == "" {
			return
		}
		ref := wprecover.MediaRef{Src: src, CanonicalSrc: src}
		if href, ok := media.Closest("a").Attr("href"); ok && strings.Contains(href, wprecover.UploadsMarker) {
			ref.CanonicalSrc = href
		}
		refs = append(refs, ref)
	})
	return refs
}
