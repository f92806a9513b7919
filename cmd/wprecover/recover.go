package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/wprecover"
	"github.com/fwojciec/wprecover/bloom"
	"github.com/fwojciec/wprecover/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Mirror    wprecover.Mirror
	Processor *pipeline.Processor

	// NewIndex returns the dedup index for a run over the given number of
	// documents.
	NewIndex func(documents int) *bloom.Index
}

// RecoverCmd processes every site of the mirror.
type RecoverCmd struct{}

// Run executes the recover command. Sites with unmapped categories are
// still exported; their errors are reported together once all sites are done.
func (c *RecoverCmd) Run(deps *Dependencies) error {
	sites, err := deps.Mirror.Sites()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wprecover.ErrorMessage(err))
		return err
	}

	documents := 0
	for _, site := range sites {
		paths, err := deps.Mirror.Documents(site)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", site.URL, wprecover.ErrorMessage(err))
			return err
		}
		documents += len(paths)
	}
	index := deps.NewIndex(documents)
	run := pipeline.NewRun(index)
	deps.Logger.Info("dedup index sized", "documents", documents, "bits", index.Bits())

	var unmapped []error
	for _, site := range sites {
		result, err := deps.Processor.ProcessSite(deps.Ctx, run, site)
		if err != nil && wprecover.ErrorCode(err) != wprecover.EUNMAPPED {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", site.URL, wprecover.ErrorMessage(err))
			return err
		}
		if err != nil {
			unmapped = append(unmapped, err)
		}
		printResult(deps.Stdout, result)
	}

	fmt.Fprintf(deps.Stdout, "%d records across %d sites\n", run.Emitted(), len(sites))
	deps.Logger.Info("run complete",
		"documents", documents,
		"records", run.Emitted(),
		"estimated_index_count", index.EstimatedCount(),
	)

	if len(unmapped) > 0 {
		err := errors.Join(unmapped...)
		fmt.Fprintf(deps.Stderr, "error: unmapped categories, add them with --categories:\n%v\n", err)
		return wprecover.Errorf(wprecover.EUNMAPPED, "%d sites had records with unmapped categories", len(unmapped))
	}
	return nil
}

func printResult(w io.Writer, r *pipeline.SiteResult) {
	export := "no export"
	if r.ExportPath != "" {
		export = r.ExportPath
	}
	fmt.Fprintf(w, "%s: %d records, %d attachments, %d duplicates, %d skipped (%s)\n",
		r.Site.URL, r.Records, r.Attachments, r.Duplicates, r.Skipped, export)
}
