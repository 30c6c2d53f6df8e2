// Package telemetry traces t2048 moves and SSH connections with OpenTelemetry.
//
// Until Setup runs, every tracer handed out by Tracer is a no-op, so game code
// can always start spans.
package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultServiceName is used when the config leaves the name empty.
	DefaultServiceName = "t2048"
	version            = "0.1.0"
	tracerPrefix       = "t2048/"
)

// Mode is how the process serves games.
type Mode string

const (
	ModePlay  Mode = "play"  // one local terminal
	ModeServe Mode = "serve" // many players over SSH
)

// Resource attribute keys specific to t2048.
const (
	AttrMode = attribute.Key("t2048.mode")
)

// Options configures Setup.
type Options struct {
	ServiceName string
	Mode        Mode

	// Exporter receives finished spans. Nil exports over OTLP/HTTP, configured
	// by OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_EXPORTER_OTLP_HEADERS.
	Exporter sdktrace.SpanExporter
}

// Setup installs a global tracer provider for this process and returns the
// function that flushes and stops it.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	exporter := opts.Exporter
	if exporter == nil {
		exporter, err = otlptracehttp.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("telemetry: cannot create OTLP exporter: %w", err)
		}
	}

	res, err := newResource(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// newResource describes one t2048 process. Every process gets a fresh
// instance ID, so spans from two servers sharing a service name stay apart.
func newResource(ctx context.Context, opts Options) (*resource.Resource, error) {
	name := opts.ServiceName
	if name == "" {
		name = DefaultServiceName
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModePlay
	}

	return resource.New(ctx,
		resource.WithHost(),
		resource.WithProcessRuntimeVersion(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", name),
			attribute.String("service.version", version),
			attribute.String("service.instance.id", uuid.NewString()),
			AttrMode.String(string(mode)),
		),
	)
}

// Tracer returns the tracer for a t2048 component ("session", "ssh") from the
// global provider.
func Tracer(component string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(tracerPrefix + component)
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(tracerPrefix + "noop")
}
