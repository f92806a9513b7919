package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/wprecover"
)

// Ensure MediaTree implements wprecover.MediaStore at compile time.
var _ wprecover.MediaStore = (*MediaTree)(nil)

// MediaTree copies archived media files into an output directory. Each
// destination is written once per MediaTree. It is not safe for concurrent use.
type MediaTree struct {
	root   string
	copied map[string]bool
}

// NewMediaTree creates a MediaTree rooted at root.
func NewMediaTree(root string) *MediaTree {
	return &MediaTree{root: root, copied: make(map[string]bool)}
}

// StoreMedia copies src to destRel under the tree root, creating parent
// directories and keeping the source modification time.
func (t *MediaTree) StoreMedia(src, destRel string) error {
	rel := filepath.FromSlash(destRel)
	if !filepath.IsLocal(rel) {
		return wprecover.Errorf(wprecover.EINVALID, "media destination %q escapes the media tree", destRel)
	}
	if t.copied[rel] {
		return nil
	}

	dest := filepath.Join(t.root, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	if err := copyFile(src, dest); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	t.copied[rel] = true
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}
