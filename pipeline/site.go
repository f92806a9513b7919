package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/wprecover"
)

// Processor recovers the records of one site at a time and writes the
// site's export.
type Processor struct {
	Mirror     wprecover.Mirror
	Decoder    wprecover.Decoder
	Extractor  wprecover.Extractor
	Assembler  *Assembler
	Media      *MediaResolver
	Serializer wprecover.Serializer
	Exports    wprecover.ExportWriter
	Skips      wprecover.SkipLog

	// Records, if set, receives every emitted record of a site.
	Records wprecover.RecordWriter

	Logger *slog.Logger
}

// SiteResult summarizes the processing of one site.
type SiteResult struct {
	Site        *wprecover.Site
	Documents   int
	Records     int
	Attachments int
	Duplicates  int
	Skipped     int

	// ExportPath is empty when the site produced no records.
	ExportPath string
}

// ProcessSite processes every document of a site in order and writes the
// site's WXR export. Per-document failures are recorded as skips.
//
// Unmapped categories drop their record and are returned joined after the
// export has been written, together with a valid result. Any other error
// means the site could not be processed.
func (p *Processor) ProcessSite(ctx context.Context, run *Run, site *wprecover.Site) (*SiteResult, error) {
	logger := loggerOrDiscard(p.Logger).With("site", site.URL)
	logger.Info("processing site")

	paths, err := p.Mirror.Documents(site)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	result := &SiteResult{Site: site, Documents: len(paths)}
	var records []*wprecover.PostRecord
	var unmapped []error

	for _, docPath := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Debug("processing document", "path", docPath)
		recs, errs, err := p.processDocument(ctx, run, site, docPath, result)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
		unmapped = append(unmapped, errs...)
	}

	result.Records = len(records)
	logger.Info(fmt.Sprintf("Processed %d out of %d HTML files", len(records), len(paths)))

	if len(records) == 0 {
		logger.Info("no posts found, skipping WXR generation")
		return result, errors.Join(unmapped...)
	}

	if p.Records != nil {
		if err := p.Records.CreateRecords(ctx, site, records); err != nil {
			return nil, fmt.Errorf("store records: %w", err)
		}
	}

	exportPath, err := p.Exports.WriteExport(site, func(w io.Writer) error {
		return p.Serializer.Serialize(w, wprecover.NewChannel(site), records)
	})
	if err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}
	result.ExportPath = exportPath
	logger.Info("WXR file generated", "file", exportPath)

	return result, errors.Join(unmapped...)
}

// processDocument returns the accepted records of one document and the
// unmapped-category errors it raised. A non-nil error is fatal for the run.
func (p *Processor) processDocument(ctx context.Context, run *Run, site *wprecover.Site, docPath string, result *SiteResult) ([]*wprecover.PostRecord, []error, error) {
	logger := loggerOrDiscard(p.Logger).With("path", docPath)

	skip := func(reason wprecover.SkipReason, detail string) error {
		result.Skipped++
		if err := p.Skips.RecordSkip(ctx, wprecover.Skip{Path: docPath, Reason: reason, Detail: detail}); err != nil {
			return fmt.Errorf("record skip: %w", err)
		}
		return nil
	}

	raw, err := p.Mirror.ReadDocument(docPath)
	if err != nil {
		return nil, nil, skip(wprecover.SkipFailed, err.Error())
	}
	var html string
	if err := guard(func() (err error) {
		html, err = p.Decoder.Decode(raw)
		return err
	}); err != nil {
		var pe *panicError
		if errors.As(err, &pe) {
			logger.Error("decode panicked", "error", err)
			return nil, nil, skip(wprecover.SkipFailed, err.Error())
		}
		return nil, nil, skip(wprecover.SkipDecode, wprecover.ErrorMessage(err))
	}
	var extracted *wprecover.ExtractResult
	if err := guard(func() (err error) {
		extracted, err = p.Extractor.Extract(&wprecover.Document{Path: docPath, HTML: html})
		return err
	}); err != nil {
		var pe *panicError
		if errors.As(err, &pe) {
			logger.Error("extraction panicked", "error", err)
		}
		return nil, nil, skip(wprecover.SkipFailed, err.Error())
	}

	for _, s := range extracted.Skips {
		result.Skipped++
		if err := p.Skips.RecordSkip(ctx, s); err != nil {
			return nil, nil, fmt.Errorf("record skip: %w", err)
		}
	}

	var records []*wprecover.PostRecord
	var unmapped []error
	for _, ext := range extracted.Extractions {
		logFallbacks(ctx, logger, ext)

		rec, err := p.Assembler.Assemble(site, ext)
		if err != nil {
			reason, detail := wprecover.SkipFailed, err.Error()
			if wprecover.ErrorCode(err) == wprecover.EUNMAPPED {
				reason, detail = wprecover.SkipUnmapped, wprecover.ErrorMessage(err)
				logger.Error("unmapped category", "error", detail)
				unmapped = append(unmapped, err)
			}
			if serr := skip(reason, detail); serr != nil {
				return nil, nil, serr
			}
			continue
		}

		if !run.Accept(rec) {
			result.Duplicates++
			logger.Info("duplicate post skipped", "id", rec.ID)
			continue
		}

		if p.Media != nil {
			p.Media.Resolve(site, rec, ext.Media, run.NextMediaID)
		}
		result.Attachments += len(rec.Media)
		records = append(records, rec)
	}
	return records, unmapped, nil
}

// panicError carries a value recovered from a panic.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// guard runs fn and returns a panic raised by it as a *panicError.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return fn()
}

func logFallbacks(ctx context.Context, logger *slog.Logger, ext *wprecover.Extraction) {
	for _, fb := range ext.Fallbacks {
		level := slog.LevelWarn
		if fb.Degraded {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "weaker signal used", "field", fb.Field, "rule", fb.Rule)
	}
}
