// Package harness replays cases against a valley Traveler and compares the
// produced results with the expected ones.
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/valley/pkg/alg/valley"
	"github.com/Sumatoshi-tech/valley/pkg/observability"
	"github.com/Sumatoshi-tech/valley/pkg/testcase"
)

// ErrCasesFailed reports that at least one replayed case failed.
var ErrCasesFailed = errors.New("one or more cases failed")

// Step is the result of one result-producing operation.
type Step struct {
	// Err is set when the operation could not produce a value; Value is NaN then.
	Err error
	Op  testcase.Operation
	// Index is the position of the operation in the case.
	Index int
	Value float64
}

// Outcome is the verdict for one replayed case.
type Outcome struct {
	Case          *testcase.Case
	Name          string
	Steps         []Step
	Mismatches    []Mismatch
	Duration      time.Duration
	CountMismatch bool
}

// Passed reports whether every result matched.
func (o *Outcome) Passed() bool {
	return !o.CountMismatch && len(o.Mismatches) == 0
}

// Results returns the produced values in order.
func (o *Outcome) Results() []float64 {
	out := make([]float64, len(o.Steps))
	for i, s := range o.Steps {
		out[i] = s.Value
	}

	return out
}

// Check returns ErrCasesFailed when any outcome did not pass.
func Check(outcomes []*Outcome) error {
	failed := 0

	for _, o := range outcomes {
		if !o.Passed() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCasesFailed, failed, len(outcomes))
	}

	return nil
}

// Runner replays cases. The zero configuration discards logs and traces.
type Runner struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *observability.HarnessMetrics
	tolerance float64
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger for per-case and per-mismatch records.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTracer sets the tracer used for one span per case.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithMetrics sets the instruments recorded while replaying.
func WithMetrics(m *observability.HarnessMetrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithTolerance sets the largest accepted absolute difference.
func WithTolerance(tolerance float64) Option {
	return func(r *Runner) { r.tolerance = tolerance }
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger: slog.New(slog.DiscardHandler),
		tracer: nooptrace.NewTracerProvider().Tracer("harness"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run replays c on a fresh Traveler and compares the results. Log records
// carry the case name through the context; see observability.ContextWithCase.
func (r *Runner) Run(ctx context.Context, name string, c *testcase.Case) *Outcome {
	ctx = observability.ContextWithCase(ctx, name)

	ctx, span := r.tracer.Start(ctx, "harness.run", trace.WithAttributes(
		attribute.String("case.name", name),
		attribute.Int("case.landscape", len(c.Landscape)),
		attribute.Int("case.operations", len(c.Operations)),
	))
	defer span.End()

	start := time.Now()
	steps := r.replay(ctx, c)
	duration := time.Since(start)

	mismatches, countMismatch := Compare(c.Expected, steps, r.tolerance)

	out := &Outcome{
		Case:          c,
		Name:          name,
		Steps:         steps,
		Mismatches:    mismatches,
		Duration:      duration,
		CountMismatch: countMismatch,
	}

	r.finish(ctx, span, out)

	return out
}

// RunFiles loads and replays every path in order. A load error stops the
// run and is returned together with the outcomes gathered so far.
func (r *Runner) RunFiles(ctx context.Context, paths []string) ([]*Outcome, error) {
	outcomes := make([]*Outcome, 0, len(paths))

	for _, path := range paths {
		c, err := testcase.LoadFile(path)
		if err != nil {
			return outcomes, fmt.Errorf("load case: %w", err)
		}

		outcomes = append(outcomes, r.Run(ctx, path, c))
	}

	return outcomes, nil
}

func (r *Runner) replay(ctx context.Context, c *testcase.Case) []Step {
	tr := valley.New(c.Landscape)
	steps := make([]Step, 0, c.ResultCount())

	for i, op := range c.Operations {
		if r.metrics != nil {
			r.metrics.RecordOperation(ctx, op.Code.Name())
		}

		step := Step{Op: op, Index: i}

		switch op.Code {
		case testcase.OpInsert:
			tr.Insert(op.Height)

			continue
		case testcase.OpFirst:
			step.Value, step.Err = tr.First()
		case testcase.OpRemove:
			step.Value, step.Err = tr.Remove()
			if step.Err == nil && r.metrics != nil {
				r.metrics.RecordTreasure(ctx, step.Value)
			}
		case testcase.OpTotal:
			step.Value = tr.TotalTreasure()
		}

		if step.Err != nil {
			step.Value = math.NaN()
		}

		steps = append(steps, step)
	}

	return steps
}

func (r *Runner) finish(ctx context.Context, span trace.Span, out *Outcome) {
	status := observability.StatusPass
	if !out.Passed() {
		status = observability.StatusFail
		span.SetStatus(codes.Error, "results differ")
	}

	span.SetAttributes(
		attribute.Bool("case.passed", out.Passed()),
		attribute.Int("case.mismatches", len(out.Mismatches)),
	)

	if r.metrics != nil {
		r.metrics.RecordCase(ctx, status, out.Duration, len(out.Mismatches))
	}

	if out.CountMismatch {
		r.logger.WarnContext(ctx, "result count mismatch",
			"expected", len(out.Case.Expected), "got", len(out.Steps))
	}

	for _, m := range out.Mismatches {
		args := []any{"result", m.Result, "op", m.Op.String(), "expected", m.Expected, "got", m.Got}
		if m.Err != nil {
			args = append(args, "error", m.Err)
		}

		r.logger.WarnContext(ctx, "result mismatch", args...)
	}

	r.logger.InfoContext(ctx, "case replayed",
		"passed", out.Passed(), "ops", len(out.Case.Operations), "duration", out.Duration)
}
