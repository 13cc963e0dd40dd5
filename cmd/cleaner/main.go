// Command cleaner turns a raw protein intensity export into an
// analysis-ready table: it loads an Excel or CSV matrix, runs the seven
// cleaning stages, and optionally writes the result as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"protclean/internal/cleaning"
	"protclean/internal/config"
	"protclean/internal/exporter"
	"protclean/internal/infrastructure"
	"protclean/internal/loader"
)

func main() {
	inPath := flag.String("in", "", "input intensity matrix (.xlsx, .xlsm or .csv)")
	outPath := flag.String("out", "", "output CSV path (omit to skip writing)")
	sheet := flag.String("sheet", "", "worksheet to read (defaults to the first sheet)")
	trace := flag.Bool("trace", false, "emit OpenTelemetry spans to stdout")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: cleaner -in <matrix.xlsx> [-out cleaned.csv] [-sheet name] [-trace]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureRunID(context.Background())
	if err := run(ctx, cfg, logger, *inPath, *outPath, *sheet, *trace); err != nil {
		logger.ErrorContext(ctx, "cleaning failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run executes one load-clean-write cycle. The cleaned table stays
// usable even when writing fails; the error is still surfaced.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, inPath, outPath, sheet string, trace bool) error {
	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		ServiceName:    infrastructure.ServiceName,
		ServiceVersion: config.AppVersion,
		EnableTracing:  trace,
		EnableMetrics:  true,
	}, logger)
	if err != nil {
		return err
	}
	defer providers.Shutdown(ctx)

	table, err := loader.Load(inPath, loader.Options{Sheet: sheet})
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "loaded intensity matrix",
		slog.String("path", inPath),
		slog.Int("rows", table.Height()),
		slog.Int("columns", table.Width()))
	fmt.Printf("Original shape: (%d, %d)\n", table.Height(), table.Width())

	pipeline, err := cleaning.New(cfg.Cleaning,
		cleaning.WithLogger(logger),
		cleaning.WithTelemetry(providers),
		cleaning.WithReporter(func(r cleaning.StageReport) {
			fmt.Printf("After stage %d (%s): (%d, %d), removed %d rows\n",
				r.Number, r.Name, r.RowsAfter, len(table.Columns), r.RowsRemoved)
		}),
	)
	if err != nil {
		return err
	}

	cleaned, err := pipeline.Run(ctx, table)
	if err != nil {
		return err
	}
	fmt.Printf("All filters applied. Final shape: (%d, %d)\n", cleaned.Height(), cleaned.Width())

	if rm, err := providers.Collect(ctx); err == nil {
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				logger.DebugContext(ctx, "run metric", slog.String("name", m.Name))
			}
		}
	}

	if outPath == "" {
		return nil
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteTable(outPath, cleaned, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		return err
	}
	logger.InfoContext(ctx, "saved cleaned matrix",
		slog.String("path", outPath),
		slog.Int("rows", cleaned.Height()))
	fmt.Printf("Data saved to %s\n", outPath)

	return nil
}
