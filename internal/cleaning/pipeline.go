package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"protclean/internal/config"
	apperrors "protclean/internal/errors"
	"protclean/internal/infrastructure"
	"protclean/internal/matrix"
)

// StageCount is the number of stages in the pipeline.
const StageCount = 7

// StageReport describes the effect of one stage on the table.
type StageReport struct {
	Number      int
	Name        string
	RowsBefore  int
	RowsAfter   int
	RowsRemoved int
}

// ReportFunc receives a StageReport after each stage completes. Callers
// use it for progress display or test assertions; it carries no
// information the pipeline itself depends on.
type ReportFunc func(StageReport)

// Pipeline applies the cleaning stages to a table.
type Pipeline struct {
	cfg         config.CleaningConfig
	repIDRe     *regexp.Regexp
	logger      *slog.Logger
	report      ReportFunc
	tracer      trace.Tracer
	rowsRemoved metric.Int64Counter
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for per-stage progress logs.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithReporter sets a callback invoked with a StageReport after every stage.
func WithReporter(fn ReportFunc) Option {
	return func(p *Pipeline) { p.report = fn }
}

// WithTelemetry wires the pipeline to OpenTelemetry providers: one span
// per run, one child span per stage, and a rows-removed counter keyed
// by stage name.
func WithTelemetry(providers *infrastructure.OTelProviders) Option {
	return func(p *Pipeline) {
		if providers == nil {
			return
		}
		p.tracer = providers.Tracer
		counter, err := providers.Meter.Int64Counter("cleaning_rows_removed_total",
			metric.WithDescription("Rows removed from the intensity matrix, by stage"))
		if err == nil {
			p.rowsRemoved = counter
		}
	}
}

// New creates a Pipeline from the cleaning configuration.
func New(cfg config.CleaningConfig, opts ...Option) (*Pipeline, error) {
	re, err := cfg.CompileRepIDPattern()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:     cfg,
		repIDRe: re,
		tracer:  noop.NewTracerProvider().Tracer(infrastructure.TracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = infrastructure.GetLogger()
	}
	return p, nil
}

// stage binds a stage name to its transform.
type stage struct {
	name string
	fn   func(*matrix.Table) *matrix.Table
}

// stages returns the seven transforms in their mandatory order.
func (p *Pipeline) stages() []stage {
	return []stage{
		{"drop_empty_identifiers", p.dropEmptyIdentifiers},
		{"drop_all_zero_rows", p.dropAllZeroRows},
		{"drop_contaminants", p.dropContaminants},
		{"drop_unknown_repid", p.dropUnknownRepID},
		{"rewrite_repid_identifiers", p.rewriteRepIDIdentifiers},
		{"drop_blacklisted", p.dropBlacklisted},
		{"collapse_duplicates", p.collapseDuplicates},
	}
}

// Run applies all stages in order and returns the cleaned table. The
// input table is not modified. Run fails with a SCHEMA error before any
// stage executes if the table has no columns or its first column is not
// the identifier column.
func (p *Pipeline) Run(ctx context.Context, t *matrix.Table) (*matrix.Table, error) {
	if err := validateSchema(t); err != nil {
		return nil, err
	}

	ctx = infrastructure.EnsureRunID(ctx)
	logger := p.logger.With(slog.String("run_id", infrastructure.GetRunID(ctx)))

	ctx, runSpan := p.tracer.Start(ctx, "cleaning.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int("table.rows", t.Height()),
			attribute.Int("table.columns", t.Width()),
		))
	defer runSpan.End()

	logger.InfoContext(ctx, "starting cleaning pipeline",
		slog.Int("rows", t.Height()),
		slog.Int("columns", t.Width()))

	current := t
	for i, s := range p.stages() {
		before := current.Height()

		stageCtx, span := p.tracer.Start(ctx, fmt.Sprintf("cleaning.stage.%s", s.name),
			trace.WithAttributes(attribute.Int("stage.number", i+1)))
		current = s.fn(current)
		span.SetAttributes(
			attribute.Int("rows.before", before),
			attribute.Int("rows.after", current.Height()),
		)
		span.End()

		removed := before - current.Height()
		if p.rowsRemoved != nil {
			p.rowsRemoved.Add(stageCtx, int64(removed),
				metric.WithAttributes(attribute.String("stage", s.name)))
		}

		report := StageReport{
			Number:      i + 1,
			Name:        s.name,
			RowsBefore:  before,
			RowsAfter:   current.Height(),
			RowsRemoved: removed,
		}
		if p.report != nil {
			p.report(report)
		}
		logger.InfoContext(ctx, "stage complete",
			slog.Int("stage", report.Number),
			slog.String("name", report.Name),
			slog.Int("rows_before", report.RowsBefore),
			slog.Int("rows_after", report.RowsAfter),
			slog.Int("rows_removed", report.RowsRemoved))
	}

	logger.InfoContext(ctx, "all stages applied",
		slog.Int("rows", current.Height()),
		slog.Int("columns", current.Width()))
	runSpan.SetAttributes(attribute.Int("table.rows_final", current.Height()))

	return current, nil
}

// validateSchema checks the pipeline's input contract.
func validateSchema(t *matrix.Table) error {
	if t == nil || t.Width() == 0 {
		return apperrors.NewSchemaError("table has no columns")
	}
	if t.Columns[0] != matrix.IdentifierColumn {
		return apperrors.NewSchemaError(
			fmt.Sprintf("first column is %q, expected identifier column %q",
				t.Columns[0], matrix.IdentifierColumn))
	}
	return nil
}
