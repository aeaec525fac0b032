// Package metrics wires OpenTelemetry metrics to the Prometheus registry and
// offers small helpers for the instruments the engine records.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60} //nolint: gochecknoglobals

// Setup registers an OpenTelemetry Prometheus exporter on reg and installs a
// meter provider backed by it as the global provider.
func Setup(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	otel.SetMeterProvider(mp)

	return mp, nil
}

// Meter returns a meter from the global provider. Without Setup it is a no-op
// meter, which is what tests and one-shot CLI commands get.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Counter creates an int64 counter, falling back to a no-op instrument when
// the provider rejects the definition.
func Counter(m metric.Meter, name, description string) metric.Int64Counter {
	c, err := m.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		c, _ = noop.NewMeterProvider().Meter("").Int64Counter(name)
	}

	return c
}

// Histogram creates a float64 histogram in seconds using DefaultBuckets.
func Histogram(m metric.Meter, name, description string) metric.Float64Histogram {
	h, err := m.Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		h, _ = noop.NewMeterProvider().Meter("").Float64Histogram(name)
	}

	return h
}
