package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := RequestIDFromContext(ctx); ok {
		t.Error("expected no request ID on fresh context")
	}

	id := GenerateRequestID()
	if id == "" {
		t.Fatal("expected non-empty request ID")
	}

	ctx = WithRequestID(ctx, id)
	got, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("expected request ID to be present")
	}
	if got != id {
		t.Errorf("expected %s, got %s", id, got)
	}
}

func TestGenerateRequestID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRequestID()
		if seen[id] {
			t.Fatalf("duplicate request ID: %s", id)
		}
		seen[id] = true
	}
}

func TestFromContext_NeverNil(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("expected a logger for a bare context")
	}
	ctx := WithRequestID(context.Background(), "req-123")
	if FromContext(ctx) == nil {
		t.Error("expected a logger for a context with request ID")
	}
}

func TestConfig_LogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{Level: tt.level}
			if got := cfg.LogLevel(); got != tt.expected {
				t.Errorf("level %q: expected %v, got %v", tt.level, tt.expected, got)
			}
		})
	}
}

func TestConfig_IsJSON(t *testing.T) {
	if !(Config{Format: "json"}).IsJSON() {
		t.Error("expected json format to be JSON")
	}
	if !(Config{Format: "JSON"}).IsJSON() {
		t.Error("expected format check to be case insensitive")
	}
	if (Config{Format: "text"}).IsJSON() {
		t.Error("expected text format to not be JSON")
	}
}

func TestConfig_BaseAttributes(t *testing.T) {
	cfg := NewConfig("info", "json", "arena", "1.2.3", "prod", false)

	attrs := cfg.BaseAttributes()
	if len(attrs) != 3 {
		t.Fatalf("expected 3 base attributes, got %d", len(attrs))
	}
	if attrs[0].Value.String() != "arena" {
		t.Errorf("expected service attribute arena, got %s", attrs[0].Value.String())
	}
	if attrs[1].Value.String() != "1.2.3" {
		t.Errorf("expected version attribute 1.2.3, got %s", attrs[1].Value.String())
	}
}
