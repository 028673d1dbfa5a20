package contextutil

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestLoggerFromContext_Default(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	if logger == nil {
		t.Fatal("LoggerFromContext() returned nil")
	}
	if logger != slog.Default() {
		t.Error("LoggerFromContext() without a stored logger should return the default")
	}
}

func TestWithLogger_RoundTrip(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("request_id", "abc123")

	ctx := WithLogger(context.Background(), custom)
	if got := LoggerFromContext(ctx); got != custom {
		t.Error("LoggerFromContext() should return the logger stored by WithLogger")
	}
}
