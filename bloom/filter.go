// Package bloom provides content deduplication backed by a Bloom filter.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/wprecover"
)

// Ensure Index implements wprecover.DedupIndex at compile time.
var _ wprecover.DedupIndex = (*Index)(nil)

// DefaultFalseDropRate is the chance that distinct content is reported as
// already seen, for an index holding no more digests than it was sized for.
const DefaultFalseDropRate = 1e-9

// Index records the content digests emitted during a run.
// False drops are possible at the configured rate; a digest added before
// is always reported as seen.
type Index struct {
	f     *bloom.BloomFilter
	added int
}

// NewIndex creates an Index sized for n expected digests with the given
// false positive rate.
func NewIndex(n uint, fpRate float64) *Index {
	return &Index{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records digest and reports whether it was new.
func (idx *Index) Add(digest []byte) bool {
	if idx.f.TestAndAdd(digest) {
		return false
	}
	idx.added++
	return true
}

// Len returns the number of digests accepted as new.
func (idx *Index) Len() int {
	return idx.added
}

// EstimatedCount returns the filter's approximation of the number of
// digests recorded. It drifts above Len once the filter is overfilled.
func (idx *Index) EstimatedCount() uint {
	return uint(idx.f.ApproximatedSize())
}

// Bits returns the size of the filter in bits.
func (idx *Index) Bits() uint {
	return idx.f.Cap()
}
