// ShapeFill fills a canvas with randomly placed, non-touching polygons.
//
// Usage:
//
//	shapefill -catalog shapes.txt -seed 7 -stretch 2 -duration 10 -pdf run.pdf
//
// Settings come from ~/.shapefill/config.json, then SHAPEFILL_* environment
// variables, then flags. The result line "<run id>,<count>" is printed to
// stdout; logs go to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/ShapeFill/internal/engine"
	"github.com/piwi3910/ShapeFill/internal/export"
	"github.com/piwi3910/ShapeFill/internal/importer"
	"github.com/piwi3910/ShapeFill/internal/model"
	"github.com/piwi3910/ShapeFill/internal/project"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("shapefill failed", "error", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath string
	pdfPath    string
	xlsxPath   string
	outPath    string
	verbose    bool

	// overrides apply the flags that were given explicitly.
	overrides []func(*model.AppConfig)
}

// apply layers the explicitly set flags on top of cfg.
func (o options) apply(cfg *model.AppConfig) {
	for _, override := range o.overrides {
		override(cfg)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("shapefill", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "config file path")
	fs.StringVar(&opts.pdfPath, "pdf", "", "write a PDF snapshot of the scene")
	fs.StringVar(&opts.xlsxPath, "xlsx", "", "write the placements to an Excel workbook")
	fs.StringVar(&opts.outPath, "out", "", "save the scene as JSON")
	fs.BoolVar(&opts.verbose, "v", false, "log every placement")

	runID := fs.String("id", "", "run identifier printed with the result")
	catalog := fs.String("catalog", "", "shape catalog (.txt, .xlsx or .dxf)")
	seed := fs.Int64("seed", 0, fmt.Sprintf("random seed (%d-%d)", model.MinSeed, model.MaxSeed))
	stretch := fs.Int("stretch", 0, fmt.Sprintf("shape stretch factor (%d-%d)", model.MinStretch, model.MaxStretch))
	duration := fs.Int("duration", 0, fmt.Sprintf("fill duration in seconds (%d-%d)", model.MinDuration, model.MaxDuration))
	attempts := fs.Int("attempts", 0, "positions tried per shape, 0 for no limit")
	shapes := fs.Int("shapes", 0, "stop after this many shapes, 0 for no limit")
	workers := fs.Int("workers", 0, "goroutines per scene query")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		var override func(*model.AppConfig)
		switch f.Name {
		case "id":
			override = func(c *model.AppConfig) { c.RunID = *runID }
		case "catalog":
			override = func(c *model.AppConfig) { c.CatalogPath = *catalog }
		case "seed":
			override = func(c *model.AppConfig) { c.Seed = *seed }
		case "stretch":
			override = func(c *model.AppConfig) { c.Stretch = *stretch }
		case "duration":
			override = func(c *model.AppConfig) { c.Duration = *duration }
		case "attempts":
			override = func(c *model.AppConfig) { c.MaxAttempts = *attempts }
		case "shapes":
			override = func(c *model.AppConfig) { c.MaxShapes = *shapes }
		case "workers":
			override = func(c *model.AppConfig) { c.Workers = *workers }
		default:
			return
		}
		opts.overrides = append(opts.overrides, override)
	})
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := project.ApplyEnv(&cfg); err != nil {
		return err
	}
	opts.apply(&cfg)

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	imported := importer.ImportFile(cfg.CatalogPath)
	for _, w := range imported.Warnings {
		logger.Warn("catalog", "path", cfg.CatalogPath, "warning", w)
	}
	if err := imported.Err(); err != nil {
		return fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
	}
	logger.Info("catalog loaded", "path", cfg.CatalogPath, "shapes", len(imported.Shapes))

	placer, err := engine.New(cfg, imported.Shapes, logger)
	if err != nil {
		return err
	}

	scene, stats, err := placer.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Warn("fill interrupted", "placed", stats.Placed)
	} else if err != nil {
		return err
	}

	summary := export.NewRunSummary(cfg, stats)
	fmt.Fprintln(stdout, summary.ResultLine())
	logger.Info("run complete", "title", summary.Title())

	return writeOutputs(opts, cfg, scene, summary, logger)
}

// writeOutputs produces every requested export. An empty scene skips the
// PDF and Excel exports with a warning.
func writeOutputs(opts options, cfg model.AppConfig, scene *model.Scene, summary export.RunSummary, logger *slog.Logger) error {
	if opts.outPath != "" {
		if err := project.SaveScene(opts.outPath, cfg, scene); err != nil {
			return err
		}
		logger.Info("scene saved", "path", opts.outPath)
	}

	if scene.Len() == 0 && (opts.pdfPath != "" || opts.xlsxPath != "") {
		logger.Warn("nothing placed, skipping exports")
		return nil
	}
	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, scene, summary); err != nil {
			return fmt.Errorf("export PDF: %w", err)
		}
		logger.Info("PDF written", "path", opts.pdfPath)
	}
	if opts.xlsxPath != "" {
		if err := export.ExportXLSX(opts.xlsxPath, scene); err != nil {
			return fmt.Errorf("export Excel: %w", err)
		}
		logger.Info("workbook written", "path", opts.xlsxPath)
	}
	return nil
}
