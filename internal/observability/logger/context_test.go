package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromFallsBackToSingleton(t *testing.T) {
	if From(context.Background()) == nil {
		t.Fatal("From without injected logger must return the singleton")
	}
}

func TestToContextRoundTrip(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	scoped := zap.New(core).With(RequestID("req-123"))

	ctx := ToContext(context.Background(), scoped)
	From(ctx).Debug("hola")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].ContextMap()["request_id"] != "req-123" {
		t.Fatalf("scoped field lost: %+v", entries[0].ContextMap())
	}
}

func TestFromWithFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core))

	FromWithFields(ctx, Op("Introspection"), Key("introspection:abc")).Info("cache miss")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	cm := entries[0].ContextMap()
	if cm["op"] != "Introspection" || cm["key"] != "introspection:abc" {
		t.Fatalf("fields missing: %+v", cm)
	}
}
