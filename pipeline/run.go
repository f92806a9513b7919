// Package pipeline turns extracted content blocks into post records and
// drives the per-site recovery loop. It owns the run-scoped state shared
// by every site: the deduplication index and the attachment identity
// counter.
package pipeline

import "github.com/fwojciec/wprecover"

// Run is the state of one invocation of the pipeline. Deduplication and
// attachment identities span every site processed with the same Run.
// A Run is not safe for concurrent use.
type Run struct {
	dedup    wprecover.DedupIndex
	mediaIDs *wprecover.IDSequence
}

// NewRun creates a Run backed by the given dedup index. Attachment
// identities start just above the content identity range.
func NewRun(dedup wprecover.DedupIndex) *Run {
	return &Run{
		dedup:    dedup,
		mediaIDs: wprecover.NewIDSequence(wprecover.MediaIDOffset),
	}
}

// Digest returns the deduplication digest of a sanitized body: its full
// MD5 digest, of which the identity keeps only the leading bits.
func Digest(body string) []byte {
	sum := wprecover.ContentDigest(body)
	return sum[:]
}

// Accept reports whether rec's body has not been emitted yet in this run
// and marks it as emitted.
func (r *Run) Accept(rec *wprecover.PostRecord) bool {
	return r.dedup.Add(Digest(rec.Body))
}

// NextMediaID returns the next attachment identity.
func (r *Run) NextMediaID() int {
	return r.mediaIDs.Next()
}

// Emitted returns the number of distinct bodies accepted so far.
func (r *Run) Emitted() int {
	return r.dedup.Len()
}
