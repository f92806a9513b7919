package wprecover

import (
	"context"
	"io"
)

// Channel describes the header of a WXR export.
type Channel struct {
	Title       string
	Link        string
	Description string
}

// Default channel header texts.
const (
	DefaultChannelTitle       = "Recovered WordPress Site"
	DefaultChannelDescription = "Recovered from Wayback Machine"
)

// NewChannel returns the default channel header for a site.
func NewChannel(site *Site) *Channel {
	return &Channel{
		Title:       DefaultChannelTitle,
		Link:        site.URL,
		Description: DefaultChannelDescription,
	}
}

// Serializer renders accepted records as a WXR document.
type Serializer interface {
	// Serialize writes one WXR document containing every record and one
	// synthesized attachment item per media attachment.
	Serialize(w io.Writer, channel *Channel, records []*PostRecord) error
}

// ExportWriter persists a site's WXR export.
type ExportWriter interface {
	// WriteExport writes the export for a site and returns where it went.
	WriteExport(site *Site, write func(w io.Writer) error) (string, error)
}

// RecordWriter stores emitted records, e.g. in a run manifest.
type RecordWriter interface {
	CreateRecords(ctx context.Context, site *Site, records []*PostRecord) error
}

// DedupIndex holds the content digests emitted so far in a run.
type DedupIndex interface {
	// Add records digest and reports whether it was not present before.
	Add(digest []byte) bool

	// Len returns the number of digests accepted as new.
	Len() int
}
