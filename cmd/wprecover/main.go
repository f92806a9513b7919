package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wprecover"
	"github.com/fwojciec/wprecover/bloom"
	"github.com/fwojciec/wprecover/chardet"
	"github.com/fwojciec/wprecover/etree"
	"github.com/fwojciec/wprecover/fs"
	"github.com/fwojciec/wprecover/goquery"
	"github.com/fwojciec/wprecover/pipeline"
	wpslog "github.com/fwojciec/wprecover/slog"
	"github.com/fwojciec/wprecover/sqlite"
)

// minExpectedRecords is the smallest load the dedup index is sized for.
const minExpectedRecords = 1024

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wprecover"),
		kong.Description("Recover WordPress sites from an archived HTML mirror into WXR exports"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cli.LogFile, cli.Verbose, stderr)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	vocabulary := wprecover.DefaultVocabulary
	if cli.Categories != "" {
		extra, err := LoadVocabulary(cli.Categories)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", wprecover.ErrorMessage(err))
			return err
		}
		vocabulary = vocabulary.Merge(extra)
	}

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	mirror := fs.NewMirror(cli.Root, cli.SiteBaseURL)
	deps.Mirror = mirror

	var skips wprecover.SkipLog = fs.NewSkipLog(cli.SkipLog)
	var records wprecover.RecordWriter

	if cli.Manifest != "" {
		db := sqlite.NewDB(cli.Manifest)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open manifest: %w", err)
		}
		defer db.Close()

		manifest := sqlite.NewManifestService(db)
		if err := manifest.StartRun(ctx, cli.Root); err != nil {
			return fmt.Errorf("failed to start run: %w", err)
		}
		logger.Info("recording manifest", "path", cli.Manifest, "run", manifest.RunID())

		skips = wprecover.MultiSkipLog{skips, manifest}
		records = manifest
	}

	deps.Processor = &pipeline.Processor{
		Mirror:    mirror,
		Decoder:   wpslog.NewLoggingDecoder(chardet.NewDecoder(), logger),
		Extractor: goquery.NewExtractor(),
		Assembler: &pipeline.Assembler{Vocabulary: vocabulary},
		Media: &pipeline.MediaResolver{
			Archive: mirror,
			Store:   wpslog.NewLoggingMediaStore(fs.NewMediaTree(cli.MediaDir), logger),
			BaseURL: cli.MediaBaseURL,
			Logger:  logger,
		},
		Serializer: etree.NewSerializer(2),
		Exports:    fs.NewExportWriter(cli.OutDir),
		Skips:      wpslog.NewLoggingSkipLog(skips, logger),
		Records:    records,
		Logger:     logger,
	}
	deps.NewIndex = func(documents int) *bloom.Index {
		// A document usually holds one article; leave room for archives
		// and listings that hold several.
		return bloom.NewIndex(uint(max(2*documents, minExpectedRecords)), bloom.DefaultFalseDropRate)
	}

	return (&RecoverCmd{}).Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Root         string `default:"www.rakuyukai.org" env:"WPRECOVER_ROOT" help:"Root directory of the archived mirror"`
	SiteBaseURL  string `name:"site-base-url" default:"https://www.rakuyukai.org/raku" env:"WPRECOVER_SITE_BASE_URL" help:"Public URL the site directories live under"`
	MediaBaseURL string `name:"media-base-url" default:"https://www.rakuyukai.org/old_uploads" env:"WPRECOVER_MEDIA_BASE_URL" help:"Public URL of the collected media directory"`
	MediaDir     string `name:"media-dir" default:"media_files" env:"WPRECOVER_MEDIA_DIR" help:"Directory collected media is copied into"`
	OutDir       string `name:"out-dir" default:"." env:"WPRECOVER_OUT_DIR" help:"Directory WXR exports are written to"`
	SkipLog      string `name:"skip-log" default:"skipped_files.log" env:"WPRECOVER_SKIP_LOG" help:"File skipped documents are appended to"`
	LogFile      string `name:"log-file" default:"script.log" env:"WPRECOVER_LOG_FILE" help:"File the run log is appended to (empty for stderr only)"`
	Categories   string `type:"path" env:"WPRECOVER_CATEGORIES" help:"YAML file of extra category name to slug mappings"`
	Manifest     string `type:"path" env:"WPRECOVER_MANIFEST" help:"SQLite file to record the run manifest in"`
	Verbose      bool   `short:"v" help:"Log per-document detail"`
}

func newLogger(path string, verbose bool, stderr io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	w := stderr
	closeFn := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(stderr, f)
		closeFn = f.Close
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}
