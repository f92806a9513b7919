package mock

import "github.com/fwojciec/wprecover"

var _ wprecover.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wprecover.Extractor.
type Extractor struct {
	ExtractFn func(doc *wprecover.Document) (*wprecover.ExtractResult, error)
}

func (e *Extractor) Extract(doc *wprecover.Document) (*wprecover.ExtractResult, error) {
	return e.ExtractFn(doc)
}
