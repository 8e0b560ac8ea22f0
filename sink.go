package main

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// Sink is the telemetry boundary the scheduler emits through. Emit records
// one structured event, rendering any attached Fault as an error distinct
// from ordinary fields. ReportFailure records a failure of the generation
// process itself -- the scheduler's cooldown path -- which is unrelated to
// the synthetic faults events carry as payload.
type Sink interface {
	Emit(ctx context.Context, ev *Event) error
	ReportFailure(ctx context.Context, err error)
	Close()
}

// Annotator is an optional Sink capability: wrap a unit of work in a span
// tagged with attributes for correlation with a tracing backend. Callers
// degrade to a no-op when the sink doesn't implement it.
type Annotator interface {
	WithSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func())
}
