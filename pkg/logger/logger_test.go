package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestLoggerErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := context.Background()
	ctx = log.WithRequestID(ctx, "req-123")
	ctx = log.WithTenantID(ctx, "42")

	log.Error(ctx, "boom", errors.New("boom"))

	if !bytes.Contains(buf.Bytes(), []byte("\"request_id\"")) {
		t.Fatalf("expected request_id to be preserved; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"tenant_id\"")) {
		t.Fatalf("expected tenant_id to be preserved; entry=%s", buf.String())
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if lvl := ParseLevel("nonsense"); lvl.String() != "info" {
		t.Fatalf("expected info fallback, got %s", lvl)
	}
	if lvl := ParseLevel("warn"); lvl.String() != "warn" {
		t.Fatalf("expected warn, got %s", lvl)
	}
}

func TestWithFieldsAccumulates(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	ctx := log.WithFields(context.Background(), map[string]any{"a": 1})
	ctx = log.WithFields(ctx, map[string]any{"b": 2})
	log.Info(ctx, "hello")

	if !bytes.Contains(buf.Bytes(), []byte("\"a\":1")) || !bytes.Contains(buf.Bytes(), []byte("\"b\":2")) {
		t.Fatalf("expected both fields; entry=%s", buf.String())
	}
}
