// Package fs implements the archive mirror and the file outputs of a
// recovery run on the local filesystem.
package fs

import (
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/wprecover"
)

// Ensure Mirror implements the mirror interfaces at compile time.
var (
	_ wprecover.Mirror       = (*Mirror)(nil)
	_ wprecover.MediaArchive = (*Mirror)(nil)
)

// SiteMarker is the file whose presence makes a top-level directory of the
// mirror a separate WordPress site.
const SiteMarker = "wp-login.php"

var resizeSuffixRe = regexp.MustCompile(`-\d+x\d+(\.[a-z]+)$`)

// Mirror reads an archive mirror rooted at a local directory.
type Mirror struct {
	root        string
	siteBaseURL string
}

// NewMirror creates a Mirror for the archive at root. Site URLs are built
// from siteBaseURL and the site's subdirectory.
func NewMirror(root, siteBaseURL string) *Mirror {
	return &Mirror{root: root, siteBaseURL: siteBaseURL}
}

// Sites returns the root site followed by every top-level directory holding
// a SiteMarker, in lexical order.
func (m *Mirror) Sites() ([]*wprecover.Site, error) {
	subdirs, err := m.siteDirs()
	if err != nil {
		return nil, err
	}

	sites := []*wprecover.Site{m.site("")}
	for _, subdir := range subdirs {
		sites = append(sites, m.site(subdir))
	}
	return sites, nil
}

func (m *Mirror) site(subdir string) *wprecover.Site {
	u := strings.TrimRight(m.siteBaseURL, "/") + "/" + strings.Trim(subdir, "/")
	return &wprecover.Site{Subdir: subdir, URL: strings.TrimRight(u, "/")}
}

func (m *Mirror) siteDirs() ([]string, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, wprecover.Errorf(wprecover.EINVALID, "archive root %s unreadable: %v", m.root, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && fileExists(filepath.Join(m.root, e.Name(), SiteMarker)) {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// Documents returns the HTML files of a site in lexical walk order. The
// root site excludes the directories of the other sites.
func (m *Mirror) Documents(site *wprecover.Site) ([]string, error) {
	exclude := map[string]bool{}
	if site.Subdir == "" {
		subdirs, err := m.siteDirs()
		if err != nil {
			return nil, err
		}
		for _, subdir := range subdirs {
			exclude[filepath.Join(m.root, subdir)] = true
		}
	}

	var docs []string
	err := filepath.WalkDir(filepath.Join(m.root, site.Subdir), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if exclude[p] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".html") {
			docs = append(docs, filepath.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// ReadDocument returns the bytes of a document returned by Documents.
func (m *Mirror) ReadDocument(docPath string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(docPath))
}

// LocateMedia finds the archived copy of an uploads-relative file in the
// site's uploads directory. The exact filename is tried first in its
// percent-encoded and literal forms; then a file whose name starts with
// the filename stripped of its -WIDTHxHEIGHT suffix is accepted.
//
// Returns ENOTFOUND if no file matches.
func (m *Mirror) LocateMedia(site *wprecover.Site, relPath string) (*wprecover.MediaMatch, error) {
	dir, name := path.Split(relPath)
	searchDir := filepath.Join(m.root, site.Subdir, "wp-content", "uploads", filepath.FromSlash(dir))

	if info, err := os.Stat(searchDir); err != nil || !info.IsDir() {
		return nil, wprecover.Errorf(wprecover.ENOTFOUND, "media directory %s not found", searchDir)
	}

	candidates := filenameCandidates(name)
	for _, candidate := range candidates {
		if p := filepath.Join(searchDir, candidate); fileExists(p) {
			return &wprecover.MediaMatch{LocalPath: p}, nil
		}
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, err
	}
	for _, candidate := range candidates {
		base := resizeSuffixRe.ReplaceAllString(candidate, "$1")
		if base == candidate {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasPrefix(e.Name(), base) {
				return &wprecover.MediaMatch{LocalPath: filepath.Join(searchDir, e.Name()), Resized: true}, nil
			}
		}
	}

	return nil, wprecover.Errorf(wprecover.ENOTFOUND, "media %s not found", relPath)
}

// filenameCandidates returns the distinct on-disk spellings of a filename
// taken from a URL: canonically percent-encoded, as given, and decoded.
func filenameCandidates(name string) []string {
	decoded, err := url.PathUnescape(name)
	if err != nil {
		decoded = name
	}

	var candidates []string
	seen := map[string]bool{}
	for _, c := range []string{quote(decoded), name, decoded} {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		candidates = append(candidates, c)
	}
	return candidates
}

// quote percent-encodes every byte outside the unreserved URI characters,
// using upper-case hex.
func quote(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
