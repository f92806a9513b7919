package mock

import (
	"context"

	"github.com/fwojciec/wprecover"
)

var _ wprecover.SkipLog = (*SkipLog)(nil)

// SkipLog is a mock implementation of wprecover.SkipLog.
type SkipLog struct {
	RecordSkipFn func(ctx context.Context, skip wprecover.Skip) error
}

func (l *SkipLog) RecordSkip(ctx context.Context, skip wprecover.Skip) error {
	return l.RecordSkipFn(ctx, skip)
}
