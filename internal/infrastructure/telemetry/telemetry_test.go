package telemetry

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/trace"
)

func TestInitTracerWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "vaultaudit-test", "")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestInjectKafkaHeaders(t *testing.T) {
	if _, err := InitTracer(context.Background(), "vaultaudit-test", ""); err != nil {
		t.Fatal(err)
	}
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	headers := []kafka.Header{{Key: "Traceparent", Value: []byte("stale")}}
	InjectKafkaHeaders(ctx, &headers)

	if len(headers) != 1 {
		t.Fatalf("expected existing header to be replaced, got %d headers", len(headers))
	}
	want := "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	if got := string(headers[0].Value); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
