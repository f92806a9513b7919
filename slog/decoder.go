// Package slog provides logging decorators for the recovery pipeline's
// collaborators.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/wprecover"
)

// Ensure LoggingDecoder implements wprecover.Decoder.
var _ wprecover.Decoder = (*LoggingDecoder)(nil)

// charsetDecoder is implemented by decoders that report the encoding they
// detected while decoding.
type charsetDecoder interface {
	DecodeCharset(raw []byte) (text, label string, err error)
}

// LoggingDecoder wraps a Decoder with debug logging.
type LoggingDecoder struct {
	next   wprecover.Decoder
	logger *slog.Logger
}

// NewLoggingDecoder creates a new LoggingDecoder.
func NewLoggingDecoder(next wprecover.Decoder, logger *slog.Logger) *LoggingDecoder {
	return &LoggingDecoder{next: next, logger: logger}
}

// Decode delegates to the wrapped decoder and logs the operation.
func (d *LoggingDecoder) Decode(raw []byte) (text string, err error) {
	var label string
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(raw), "duration", time.Since(begin)}
		if label != "" {
			attrs = append(attrs, "encoding", label)
		}
		if err != nil {
			d.logger.Warn("decode failed", append(attrs, "err", err)...)
			return
		}
		d.logger.Debug("decode", attrs...)
	}(time.Now())

	if cd, ok := d.next.(charsetDecoder); ok {
		text, label, err = cd.DecodeCharset(raw)
		return text, err
	}
	return d.next.Decode(raw)
}
