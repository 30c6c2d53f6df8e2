package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNoopTracerDoesNotRecord(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "noop")
	defer span.End()

	if span.IsRecording() {
		t.Error("no-op span should not record")
	}
	if span.SpanContext().IsValid() {
		t.Error("no-op span should have an invalid span context")
	}
}

func TestTracerBeforeSetup(t *testing.T) {
	tr := Tracer("session")
	if tr == nil {
		t.Fatal("Tracer() returned nil")
	}

	_, span := tr.Start(context.Background(), "move")
	defer span.End()
	if span.IsRecording() {
		t.Error("tracer from the default global provider should not record")
	}
}

func TestResourceDescribesProcess(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantName string
		wantMode Mode
	}{
		{"defaults", Options{}, DefaultServiceName, ModePlay},
		{"ssh server", Options{ServiceName: "t2048-eu", Mode: ModeServe}, "t2048-eu", ModeServe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newResource(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("newResource() failed: %v", err)
			}
			set := res.Set()
			if v, ok := set.Value("service.name"); !ok || v.AsString() != tt.wantName {
				t.Errorf("service.name = %q, expected %q", v.AsString(), tt.wantName)
			}
			if v, ok := set.Value(AttrMode); !ok || v.AsString() != string(tt.wantMode) {
				t.Errorf("%s = %q, expected %q", AttrMode, v.AsString(), tt.wantMode)
			}
			if v, ok := set.Value("service.instance.id"); !ok || v.AsString() == "" {
				t.Error("service.instance.id should be set")
			}
		})
	}
}

func TestResourceInstanceIDsDiffer(t *testing.T) {
	a, err := newResource(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := newResource(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	idA, _ := a.Set().Value("service.instance.id")
	idB, _ := b.Set().Value("service.instance.id")
	if idA.AsString() == idB.AsString() {
		t.Errorf("two processes share instance ID %q", idA.AsString())
	}
}

func TestSetupExportsSpans(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := Setup(context.Background(), Options{Mode: ModeServe, Exporter: exporter})
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	_, span := Tracer("ssh").Start(context.Background(), "ssh.session")
	span.End()

	tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	if !ok {
		t.Fatalf("global provider is %T, expected the SDK provider", otel.GetTracerProvider())
	}
	if err := tp.ForceFlush(context.Background()); err != nil {
		t.Fatalf("ForceFlush() failed: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("exported %d spans, expected 1", len(spans))
	}
	if got := spans[0].InstrumentationScope.Name; got != "t2048/ssh" {
		t.Errorf("scope = %q, expected t2048/ssh", got)
	}
	if v, _ := spans[0].Resource.Set().Value(AttrMode); v.AsString() != string(ModeServe) {
		t.Errorf("span resource mode = %q, expected serve", v.AsString())
	}

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}
