package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/wprecover"
)

// Ensure LoggingMediaStore implements wprecover.MediaStore.
var _ wprecover.MediaStore = (*LoggingMediaStore)(nil)

// LoggingMediaStore wraps a MediaStore with debug logging.
type LoggingMediaStore struct {
	next   wprecover.MediaStore
	logger *slog.Logger
}

// NewLoggingMediaStore creates a new LoggingMediaStore.
func NewLoggingMediaStore(next wprecover.MediaStore, logger *slog.Logger) *LoggingMediaStore {
	return &LoggingMediaStore{next: next, logger: logger}
}

// StoreMedia delegates to the wrapped store and logs the operation.
func (s *LoggingMediaStore) StoreMedia(src, destRel string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("store media",
			"src", src,
			"dest", destRel,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.StoreMedia(src, destRel)
}
