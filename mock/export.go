package mock

import (
	"context"
	"io"

	"github.com/fwojciec/wprecover"
)

var _ wprecover.Serializer = (*Serializer)(nil)

// Serializer is a mock implementation of wprecover.Serializer.
type Serializer struct {
	SerializeFn func(w io.Writer, channel *wprecover.Channel, records []*wprecover.PostRecord) error
}

func (s *Serializer) Serialize(w io.Writer, channel *wprecover.Channel, records []*wprecover.PostRecord) error {
	return s.SerializeFn(w, channel, records)
}

var _ wprecover.ExportWriter = (*ExportWriter)(nil)

// ExportWriter is a mock implementation of wprecover.ExportWriter.
type ExportWriter struct {
	WriteExportFn func(site *wprecover.Site, write func(w io.Writer) error) (string, error)
}

func (e *ExportWriter) WriteExport(site *wprecover.Site, write func(w io.Writer) error) (string, error) {
	return e.WriteExportFn(site, write)
}

var _ wprecover.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of wprecover.RecordWriter.
type RecordWriter struct {
	CreateRecordsFn func(ctx context.Context, site *wprecover.Site, records []*wprecover.PostRecord) error
}

func (w *RecordWriter) CreateRecords(ctx context.Context, site *wprecover.Site, records []*wprecover.PostRecord) error {
	return w.CreateRecordsFn(ctx, site, records)
}
