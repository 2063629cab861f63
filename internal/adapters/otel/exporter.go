// Package otel exports insights computation metrics to an OTEL Collector.
package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "lems-server"
	serviceVersion = "1.0.0"
)

// Recorder records insights computation metrics.
type Recorder interface {
	RecordComputation(ctx context.Context, sessionCount int, duration time.Duration, err error)
	Close(ctx context.Context) error
}

// Exporter is a Recorder backed by an OTLP gRPC metrics pipeline.
type Exporter struct {
	provider        *sdkmetric.MeterProvider
	requestsTotal   metric.Int64Counter
	sessionsTotal   metric.Int64Counter
	computeDuration metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	requestsTotal, err := meter.Int64Counter(
		"lems_insights_requests_total",
		metric.WithDescription("Insights computations attempted"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}

	sessionsTotal, err := meter.Int64Counter(
		"lems_insights_sessions_total",
		metric.WithDescription("Sessions aggregated into insights reports"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}

	computeDuration, err := meter.Float64Histogram(
		"lems_insights_duration_seconds",
		metric.WithDescription("End-to-end insights computation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &Exporter{
		provider:        provider,
		requestsTotal:   requestsTotal,
		sessionsTotal:   sessionsTotal,
		computeDuration: computeDuration,
	}, nil
}

// RecordComputation records one insights computation attempt.
func (e *Exporter) RecordComputation(ctx context.Context, sessionCount int, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(attribute.String("status", status))

	e.requestsTotal.Add(ctx, 1, attrs)
	e.computeDuration.Record(ctx, duration.Seconds(), attrs)
	if err == nil {
		e.sessionsTotal.Add(ctx, int64(sessionCount))
	}
}

// Close flushes pending metrics and shuts the pipeline down.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
