// Package tracing opens an OpenTelemetry span around every observed unit run.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/askiada/go-compose/pkg/compose/model"
)

const instrumentationName = "github.com/askiada/go-compose"

type observer struct {
	tracer trace.Tracer
}

type config struct {
	provider trace.TracerProvider
}

// Option configures the tracing observer.
type Option func(*config)

// WithTracerProvider sets the provider spans are created from. The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.provider = tp
	}
}

// NewObserver creates an observer recording one span per observed unit run. Spans of nested units
// are children of the span of the unit containing them.
func NewObserver(opts ...Option) model.Observer {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.provider == nil {
		cfg.provider = otel.GetTracerProvider()
	}

	return &observer{tracer: cfg.provider.Tracer(instrumentationName)}
}

type spanKey struct {
	o *observer
}

func (o *observer) OnUnitStart(ctx context.Context, info model.UnitInfo) context.Context {
	name := info.Name
	if name == "" {
		name = string(info.Kind)
	}

	attrs := []attribute.KeyValue{attribute.String("compose.kind", string(info.Kind))}
	if id, ok := model.RunIDFrom(ctx); ok {
		attrs = append(attrs, attribute.String("compose.run_id", id.String()))
	}

	ctx, span := o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))

	return context.WithValue(ctx, spanKey{o}, span)
}

func (o *observer) OnUnitDone(ctx context.Context, _ model.UnitInfo, report model.Report) {
	span, ok := ctx.Value(spanKey{o}).(trace.Span)
	if !ok {
		return
	}

	span.SetAttributes(attribute.String("compose.outcome", string(report.Outcome)))

	if report.Err != nil {
		span.RecordError(report.Err)
		span.SetStatus(codes.Error, report.Err.Error())
	}

	span.End()
}
