package mock_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/fwojciec/wprecover"
	"github.com/fwojciec/wprecover/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWriter_CreateRecords(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateRecordsFn", func(t *testing.T) {
		t.Parallel()

		var calledSite *wprecover.Site
		var calledRecords []*wprecover.PostRecord
		w := &mock.RecordWriter{
			CreateRecordsFn: func(_ context.Context, site *wprecover.Site, records []*wprecover.PostRecord) error {
				calledSite = site
				calledRecords = records
				return nil
			},
		}

		site := &wprecover.Site{URL: "https://example.org"}
		records := []*wprecover.PostRecord{{ID: 1, Type: wprecover.PostTypePost, Title: "Hello"}}

		err := w.CreateRecords(context.Background(), site, records)

		require.NoError(t, err)
		assert.Equal(t, site, calledSite)
		assert.Equal(t, records, calledRecords)
	})
}

func TestExportWriter_WriteExport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := &mock.ExportWriter{
		WriteExportFn: func(_ *wprecover.Site, write func(w io.Writer) error) (string, error) {
			return "out.xml", write(&buf)
		},
	}

	path, err := e.WriteExport(&wprecover.Site{}, func(w io.Writer) error {
		_, err := io.WriteString(w, "<rss/>")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, "out.xml", path)
	assert.Equal(t, "<rss/>", buf.String())
}
