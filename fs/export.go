package fs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wprecover"
)

// Ensure ExportWriter implements wprecover.ExportWriter at compile time.
var _ wprecover.ExportWriter = (*ExportWriter)(nil)

// ExportWriter writes one export file per site into a directory.
// Files are written to a .tmp sibling and renamed into place once complete.
type ExportWriter struct {
	dir string
}

// NewExportWriter creates a new ExportWriter.
func NewExportWriter(dir string) *ExportWriter {
	return &ExportWriter{dir: dir}
}

// ExportFilename returns the export filename of a site.
// Example: subdir "raku/old" → wordpress_export_raku_old.xml
func ExportFilename(site *wprecover.Site) string {
	name := strings.ReplaceAll(strings.Trim(site.Subdir, "/"), "/", "_")
	return "wordpress_export_" + name + ".xml"
}

// WriteExport writes the site's export through write and returns the
// final file path. Nothing is left behind when write fails.
func (e *ExportWriter) WriteExport(site *wprecover.Site, write func(w io.Writer) error) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", err
	}

	final := filepath.Join(e.dir, ExportFilename(site))
	tmp := final + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return final, nil
}
