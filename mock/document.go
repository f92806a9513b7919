package mock

import "github.com/fwojciec/wprecover"

var _ wprecover.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of wprecover.Decoder.
type Decoder struct {
	DecodeFn func(raw []byte) (string, error)
}

func (d *Decoder) Decode(raw []byte) (string, error) {
	return d.DecodeFn(raw)
}

var _ wprecover.Mirror = (*Mirror)(nil)

// Mirror is a mock implementation of wprecover.Mirror.
type Mirror struct {
	SitesFn        func() ([]*wprecover.Site, error)
	DocumentsFn    func(site *wprecover.Site) ([]string, error)
	ReadDocumentFn func(path string) ([]byte, error)
}

func (m *Mirror) Sites() ([]*wprecover.Site, error) {
	return m.SitesFn()
}

func (m *Mirror) Documents(site *wprecover.Site) ([]string, error) {
	return m.DocumentsFn(site)
}

func (m *Mirror) ReadDocument(path string) ([]byte, error) {
	return m.ReadDocumentFn(path)
}
