package pipeline

import (
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/fwojciec/wprecover"
)

var uploadsRelativeRe = regexp.MustCompile(`/wp-content/uploads/(.+)`)

// MediaResolver maps media references to archived files, copies them to
// the media store and builds the attachments of a record.
type MediaResolver struct {
	Archive wprecover.MediaArchive
	Store   wprecover.MediaStore

	// BaseURL is the public URL the media tree is served from.
	BaseURL string

	Logger *slog.Logger
}

// Resolve appends one attachment to rec for every reference that could be
// located and stored. Unresolvable references are logged and dropped; the
// body markup is left as is.
func (r *MediaResolver) Resolve(site *wprecover.Site, rec *wprecover.PostRecord, refs []wprecover.MediaRef, nextID func() int) {
	for _, ref := range refs {
		if att := r.resolve(site, rec, ref, nextID); att != nil {
			rec.Media = append(rec.Media, att)
		}
	}
}

func (r *MediaResolver) resolve(site *wprecover.Site, rec *wprecover.PostRecord, ref wprecover.MediaRef, nextID func() int) *wprecover.MediaAttachment {
	logger := loggerOrDiscard(r.Logger).With("src", ref.Src, "path", rec.SourcePath)

	if !strings.Contains(ref.Src, wprecover.UploadsMarker) {
		logger.Warn("media outside uploads tree skipped")
		return nil
	}
	rel, ok := UploadsRelative(ref.Src)
	if !ok {
		logger.Warn("media path not resolvable")
		return nil
	}
	canonicalRel, ok := UploadsRelative(ref.CanonicalSrc)
	if !ok {
		logger.Warn("media path not resolvable", "canonical", ref.CanonicalSrc)
		return nil
	}

	match, err := r.Archive.LocateMedia(site, rel)
	if err != nil {
		if wprecover.ErrorCode(err) == wprecover.ENOTFOUND {
			logger.Warn("media file not found")
		} else {
			logger.Error("media lookup failed", "error", err)
		}
		return nil
	}
	if match.Resized {
		logger.Warn("using resized image", "file", match.LocalPath)
	}

	// The stored copy takes the canonical filename in the referenced directory.
	destRel := path.Join(site.Subdir, path.Dir(rel), path.Base(canonicalRel))
	if err := r.Store.StoreMedia(match.LocalPath, destRel); err != nil {
		logger.Error("media copy failed", "file", match.LocalPath, "error", err)
		return nil
	}

	filename := path.Base(destRel)
	return &wprecover.MediaAttachment{
		ID:       nextID(),
		ParentID: rec.ID,
		URL:      strings.TrimRight(r.BaseURL, "/") + "/" + destRel,
		Filename: filename,
		Title:    mediaTitle(filename),
		Date:     rec.Date,
	}
}

// UploadsRelative returns the part of a media URL below the uploads tree,
// without query or fragment.
func UploadsRelative(src string) (string, bool) {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	m := uploadsRelativeRe.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// mediaTitle is the URL-decoded filename without its extension.
func mediaTitle(filename string) string {
	name := filename
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
