package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricCasesTotal      = "valley.cases.total"
	metricCaseDuration    = "valley.case.duration.seconds"
	metricOperationsTotal = "valley.operations.total"
	metricMismatchesTotal = "valley.mismatches.total"
	metricTreasure        = "valley.treasure"

	attrOp     = "op"
	attrStatus = "status"

	// StatusPass labels a case whose results matched.
	StatusPass = "pass"
	// StatusFail labels a case with at least one mismatch.
	StatusFail = "fail"
)

// durationBucketBoundaries covers 10µs to 10s.
var durationBucketBoundaries = []float64{1e-5, 1e-4, 1e-3, 0.01, 0.1, 1, 10}

// HarnessMetrics holds the instruments recorded while replaying cases.
type HarnessMetrics struct {
	casesTotal      metric.Int64Counter
	caseDuration    metric.Float64Histogram
	operationsTotal metric.Int64Counter
	mismatchesTotal metric.Int64Counter
	treasure        metric.Float64Histogram
}

// NewHarnessMetrics creates the harness instruments from the given meter.
func NewHarnessMetrics(mt metric.Meter) (*HarnessMetrics, error) {
	casesTotal, err := mt.Int64Counter(metricCasesTotal,
		metric.WithDescription("Replayed cases by outcome"),
		metric.WithUnit("{case}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCasesTotal, err)
	}

	caseDuration, err := mt.Float64Histogram(metricCaseDuration,
		metric.WithDescription("Time to replay one case"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCaseDuration, err)
	}

	operationsTotal, err := mt.Int64Counter(metricOperationsTotal,
		metric.WithDescription("Operations applied to a landscape"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOperationsTotal, err)
	}

	mismatchesTotal, err := mt.Int64Counter(metricMismatchesTotal,
		metric.WithDescription("Results that differed from the expected value"),
		metric.WithUnit("{result}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricMismatchesTotal, err)
	}

	treasure, err := mt.Float64Histogram(metricTreasure,
		metric.WithDescription("Treasure collected per removed valley"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTreasure, err)
	}

	return &HarnessMetrics{
		casesTotal:      casesTotal,
		caseDuration:    caseDuration,
		operationsTotal: operationsTotal,
		mismatchesTotal: mismatchesTotal,
		treasure:        treasure,
	}, nil
}

// RecordOperation counts one applied operation.
func (hm *HarnessMetrics) RecordOperation(ctx context.Context, op string) {
	hm.operationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
}

// RecordTreasure records the value returned by one removal.
func (hm *HarnessMetrics) RecordTreasure(ctx context.Context, value float64) {
	hm.treasure.Record(ctx, value)
}

// RecordCase records a finished case with its status, duration and the
// number of mismatching results.
func (hm *HarnessMetrics) RecordCase(ctx context.Context, status string, duration time.Duration, mismatches int) {
	attrs := metric.WithAttributes(attribute.String(attrStatus, status))

	hm.casesTotal.Add(ctx, 1, attrs)
	hm.caseDuration.Record(ctx, duration.Seconds(), attrs)

	if mismatches > 0 {
		hm.mismatchesTotal.Add(ctx, int64(mismatches))
	}
}
