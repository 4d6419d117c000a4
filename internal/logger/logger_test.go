package logger

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"local", "dev", "prod"} {
		if _, err := NewLogger(env); err != nil {
			t.Errorf("env %q: unexpected error: %v", env, err)
		}
	}

	if _, err := NewLogger("staging"); err == nil {
		t.Error("expected error for unknown environment")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled with a warn override")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled with a warn override")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level override")
	}
}

func TestFromContext(t *testing.T) {
	base := context.Background()

	// No logger stored: never nil.
	if FromContext(base) == nil {
		t.Fatal("expected a no-op logger, got nil")
	}

	l, err := NewLogger("prod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := ContextWithLogger(base, l)
	if FromContext(ctx) != l {
		t.Error("expected the stored logger back")
	}
}
