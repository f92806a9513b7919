package fs

import (
	"context"
	"fmt"
	"os"

	"github.com/fwojciec/wprecover"
)

// Ensure SkipLog implements wprecover.SkipLog at compile time.
var _ wprecover.SkipLog = (*SkipLog)(nil)

// SkipLog appends one "<reason>: <path>" line per skip to a text file.
type SkipLog struct {
	path string
}

// NewSkipLog creates a SkipLog writing to path. The file is created on
// the first skip.
func NewSkipLog(path string) *SkipLog {
	return &SkipLog{path: path}
}

// RecordSkip appends skip to the log file.
func (l *SkipLog) RecordSkip(_ context.Context, skip wprecover.Skip) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%s: %s\n", skip.Reason, skip.Path); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
