package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/wprecover"
)

// Ensure LoggingSkipLog implements wprecover.SkipLog.
var _ wprecover.SkipLog = (*LoggingSkipLog)(nil)

// LoggingSkipLog wraps a SkipLog and logs every skip as a warning.
type LoggingSkipLog struct {
	next   wprecover.SkipLog
	logger *slog.Logger
}

// NewLoggingSkipLog creates a new LoggingSkipLog.
func NewLoggingSkipLog(next wprecover.SkipLog, logger *slog.Logger) *LoggingSkipLog {
	return &LoggingSkipLog{next: next, logger: logger}
}

// RecordSkip logs the skip and delegates to the wrapped log.
func (l *LoggingSkipLog) RecordSkip(ctx context.Context, skip wprecover.Skip) error {
	attrs := []any{"path", skip.Path, "reason", string(skip.Reason)}
	if skip.Detail != "" {
		attrs = append(attrs, "detail", skip.Detail)
	}
	l.logger.WarnContext(ctx, "skipping document", attrs...)
	return l.next.RecordSkip(ctx, skip)
}
