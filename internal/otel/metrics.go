package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "muxer"

// Metrics holds the OTEL metric instruments for muxer.
// All methods are nil-safe so call sites never guard.
type Metrics struct {
	// TargetsLoaded counts candidates loaded, partitioned by source.
	TargetsLoaded metric.Int64Counter
	// Launches counts launched targets, partitioned by kind and mode.
	Launches metric.Int64Counter
	// Cancellations counts picker runs that ended without a selection.
	Cancellations metric.Int64Counter
}

// NewMetrics creates all instruments. They are no-ops when no
// MeterProvider is registered.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TargetsLoaded, err = meter.Int64Counter("muxer.targets.loaded",
		metric.WithDescription("Candidate targets loaded, by source"),
		metric.WithUnit("{target}"))
	if err != nil {
		return nil, err
	}

	m.Launches, err = meter.Int64Counter("muxer.launches",
		metric.WithDescription("Targets launched, by kind and mode"),
		metric.WithUnit("{launch}"))
	if err != nil {
		return nil, err
	}

	m.Cancellations, err = meter.Int64Counter("muxer.picker.cancellations",
		metric.WithDescription("Picker runs ended without a selection"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordTargets records how many candidates a source contributed.
func (m *Metrics) RecordTargets(ctx context.Context, source string, n int) {
	if m == nil {
		return
	}
	m.TargetsLoaded.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("target.source", source),
	))
}

// RecordLaunch records one launched target.
func (m *Metrics) RecordLaunch(ctx context.Context, kind, mode string) {
	if m == nil {
		return
	}
	m.Launches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("target.kind", kind),
		attribute.String("launch.mode", mode),
	))
}

// RecordCancellation records a picker run with no selection.
func (m *Metrics) RecordCancellation(ctx context.Context) {
	if m == nil {
		return
	}
	m.Cancellations.Add(ctx, 1)
}
