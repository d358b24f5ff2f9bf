package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instruments traces and counts outbound API requests. The zero-overhead
// path is the global no-op providers that Init installs when disabled.
type Instruments struct {
	tracer  trace.Tracer
	reqs    metric.Int64Counter
	dur     metric.Float64Histogram
	errs    metric.Int64Counter
	retries metric.Int64Counter
}

// NewInstruments creates request instruments under the given scope.
func NewInstruments(scope string) *Instruments {
	m := Meter(scope)
	reqs, _ := m.Int64Counter("pq.http.requests",
		metric.WithDescription("Total API queries sent"),
	)
	dur, _ := m.Float64Histogram("pq.http.request.duration",
		metric.WithDescription("API query duration in milliseconds, retries included"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("pq.http.errors",
		metric.WithDescription("Total failed API queries"),
	)
	retries, _ := m.Int64Counter("pq.http.retries",
		metric.WithDescription("Total retried API attempts"),
	)
	return &Instruments{
		tracer:  Tracer(scope),
		reqs:    reqs,
		dur:     dur,
		errs:    errs,
		retries: retries,
	}
}

// Start opens a client span for the named operation and counts it.
func (in *Instruments) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	ctx, span := in.tracer.Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	in.reqs.Add(ctx, 1, metric.WithAttributes(attrs...))
	return ctx, span, time.Now()
}

// Retry records one retried attempt on the current span.
func (in *Instruments) Retry(ctx context.Context, span trace.Span, attempt int, err error) {
	span.AddEvent("retry", trace.WithAttributes(
		attribute.Int("pq.attempt", attempt),
		attribute.String("error", err.Error()),
	))
	in.retries.Add(ctx, 1)
}

// Done ends the span, records duration and optional error.
func (in *Instruments) Done(ctx context.Context, span trace.Span, start time.Time, err error, attrs ...attribute.KeyValue) {
	ms := float64(time.Since(start).Milliseconds())
	in.dur.Record(ctx, ms, metric.WithAttributes(attrs...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		in.errs.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	span.SetAttributes(attrs...)
	span.End()
}
