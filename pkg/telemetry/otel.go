package telemetry

import (
	"context"

	"github.com/vango-dev/vdsl/pkg/dsl"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "vdsl"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "vdsl").
	TracerName string

	// Tracer overrides the tracer taken from the global provider.
	Tracer trace.Tracer

	// Attributes adds custom attributes to each render span.
	Attributes func(ctx context.Context, name string) []attribute.KeyValue
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// WithAttributes sets a custom attribute extractor.
func WithAttributes(fn func(ctx context.Context, name string) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.Attributes = fn
	}
}

// Tracing is a dsl.Observer that wraps every outermost render in a span.
// The span's context is what dsl.Context.StdContext returns while the
// render runs, so collaborators can start child spans from it.
type Tracing struct {
	tracer trace.Tracer
	attrs  func(ctx context.Context, name string) []attribute.KeyValue
}

// OpenTelemetry creates the tracing observer.
//
// Example:
//
//	tp := sdktrace.NewTracerProvider(...)
//	otel.SetTracerProvider(tp)
//	c := dsl.NewContext(dsl.WithObserver(telemetry.OpenTelemetry()))
func OpenTelemetry(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{tracer: config.Tracer, attrs: config.Attributes}
}

// BeginRender implements dsl.Observer.
func (t *Tracing) BeginRender(ctx context.Context, name string) (context.Context, func(dsl.RenderResult)) {
	attrs := []attribute.KeyValue{attribute.String("vdsl.name", name)}
	if t.attrs != nil {
		attrs = append(attrs, t.attrs(ctx, name)...)
	}

	spanCtx, span := t.tracer.Start(ctx, "vdsl.render "+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)

	return spanCtx, func(r dsl.RenderResult) {
		defer span.End()

		span.SetAttributes(
			attribute.Int("vdsl.elements", r.Elements),
			attribute.String("vdsl.status", Status(r.Err)),
		)
		if r.Err != nil {
			if code := Code(r.Err); code != "" {
				span.SetAttributes(attribute.String("vdsl.error_code", code))
			}
			span.RecordError(r.Err)
			span.SetStatus(codes.Error, r.Err.Error())
			return
		}
		span.SetAttributes(attribute.Bool("vdsl.waiting", r.Element.Pending()))
		span.SetStatus(codes.Ok, "")
	}
}
