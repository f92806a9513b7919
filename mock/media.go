package mock

import "github.com/fwojciec/wprecover"

var _ wprecover.MediaArchive = (*MediaArchive)(nil)

// MediaArchive is a mock implementation of wprecover.MediaArchive.
type MediaArchive struct {
	LocateMediaFn func(site *wprecover.Site, relPath string) (*wprecover.MediaMatch, error)
}

func (a *MediaArchive) LocateMedia(site *wprecover.Site, relPath string) (*wprecover.MediaMatch, error) {
	return a.LocateMediaFn(site, relPath)
}

var _ wprecover.MediaStore = (*MediaStore)(nil)

// MediaStore is a mock implementation of wprecover.MediaStore.
type MediaStore struct {
	StoreMediaFn func(src, destRel string) error
}

func (s *MediaStore) StoreMedia(src, destRel string) error {
	return s.StoreMediaFn(src, destRel)
}
