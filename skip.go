package wprecover

import "context"

// SkipReason explains why a document or block was dropped.
type SkipReason string

// SkipReason constants. The values are written verbatim to the skip log.
const (
	SkipDecode    SkipReason = "Decode error"
	SkipNoArticle SkipReason = "No <article>"
	SkipNoContent SkipReason = "No content container"
	SkipUnmapped  SkipReason = "Unmapped category"
	SkipFailed    SkipReason = "Failed"
)

// Skip records one dropped document or content block.
type Skip struct {
	Path   string
	Reason SkipReason
	Detail string
}

// SkipLog records dropped documents.
type SkipLog interface {
	RecordSkip(ctx context.Context, skip Skip) error
}

// MultiSkipLog records every skip to each of its logs in order and stops at
// the first failure.
type MultiSkipLog []SkipLog

// RecordSkip implements SkipLog.
func (m MultiSkipLog) RecordSkip(ctx context.Context, skip Skip) error {
	for _, l := range m {
		if err := l.RecordSkip(ctx, skip); err != nil {
			return err
		}
	}
	return nil
}
