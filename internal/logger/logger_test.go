package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "test"} {
		l, err := NewLogger(env)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", env, err)
			continue
		}
		if l == nil {
			t.Errorf("%s: nil logger", env)
		}
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info must be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn must be enabled")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must never return nil")
	}

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))
	FromContext(ctx).Info("hello")

	if logs.Len() != 1 || logs.All()[0].Message != "hello" {
		t.Errorf("expected the stored logger to be used, got %d entries", logs.Len())
	}
}

func TestForRequest_WideEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx, l := ForRequest(context.Background(), zap.New(core), "req-1")

	AddFields(ctx, zap.String("disease", "Migraine"))
	AddFields(ctx, zap.String("outcome", "recommended"))
	l.Info("http_request", EventFields(ctx)...)

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["disease"] != "Migraine" || fields["outcome"] != "recommended" {
		t.Errorf("unexpected fields: %v", fields)
	}
	if FromContext(ctx) != l {
		t.Error("request logger must be stored on the context")
	}
}

func TestAddFields_OutsideRequest(t *testing.T) {
	ctx := context.Background()
	AddFields(ctx, zap.String("k", "v"))
	if got := EventFields(ctx); got != nil {
		t.Errorf("expected no fields outside a request, got %v", got)
	}
}

func TestConfigFor(t *testing.T) {
	cfg, err := configFor("prod")
	if err != nil {
		t.Fatalf("prod: %v", err)
	}
	if cfg.Sampling != nil {
		t.Error("prod logger must not sample")
	}
	if cfg.Encoding != "json" {
		t.Errorf("prod encoding = %q, want json", cfg.Encoding)
	}

	cfg, err = configFor("local")
	if err != nil {
		t.Fatalf("local: %v", err)
	}
	if cfg.Encoding != "console" {
		t.Errorf("local encoding = %q, want console", cfg.Encoding)
	}
}
