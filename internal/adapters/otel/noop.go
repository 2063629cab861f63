package otel

import (
	"context"
	"time"
)

// NoOpRecorder is a Recorder that does nothing.
type NoOpRecorder struct{}

// NewNoOpRecorder creates a no-op recorder for graceful degradation when the
// exporter is disabled or misconfigured.
func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

func (r *NoOpRecorder) RecordComputation(context.Context, int, time.Duration, error) {}

func (r *NoOpRecorder) Close(context.Context) error { return nil }
