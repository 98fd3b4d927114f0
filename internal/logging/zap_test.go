package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func newObservedZap(t *testing.T) (*ZapLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func TestZapLogger_Levels(t *testing.T) {
	log, logs := newObservedZap(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	if got := logs.Len(); got != 4 {
		t.Fatalf("expected 4 entries, got %d", got)
	}

	wantLevels := []zapcore.Level{
		zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel,
	}
	wantMsgs := []string{"dbg", "inf", "wrn", "err"}
	for i, e := range logs.All() {
		if e.Level != wantLevels[i] {
			t.Errorf("entry %d: level = %v, want %v", i, e.Level, wantLevels[i])
		}
		if e.Message != wantMsgs[i] {
			t.Errorf("entry %d: msg = %q, want %q", i, e.Message, wantMsgs[i])
		}
	}
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	log, logs := newObservedZap(t)

	log.With("component", "backup").Info(context.Background(), "tick")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "backup" {
		t.Fatalf("expected component=backup, got %v", fields)
	}
}
