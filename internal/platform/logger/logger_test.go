// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/campus-api/internal/config"
	"github.com/phrazzld/campus-api/internal/platform/logger"
)

// restoreDefault puts back the default slog logger after a test that
// calls Setup.
func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"fatal", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tc.name)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tc.name, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestSetupWritesJSONAtConfiguredLevel(t *testing.T) {
	restoreDefault(t)

	buf := &logger.TestLogBuffer{}
	log, err := logger.SetupWithWriter(config.ServerConfig{Port: 8080, LogLevel: "warn"}, buf)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if log == nil {
		t.Fatal("Setup returned a nil logger")
	}

	log.Info("filtered out")
	slog.Warn("kept", "key", "value")

	entries, err := buf.GetLogEntries()
	if err != nil {
		t.Fatalf("failed to parse log entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %s", len(entries), buf.String())
	}
	if entries[0]["msg"] != "kept" || entries[0]["key"] != "value" {
		t.Errorf("unexpected entry: %v", entries[0])
	}
	if entries[0]["level"] != "WARN" {
		t.Errorf("expected WARN level, got %v", entries[0]["level"])
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	restoreDefault(t)

	buf := &logger.TestLogBuffer{}
	log, err := logger.SetupWithWriter(config.ServerConfig{Port: 8080, LogLevel: "invalid_level"}, buf)
	if err != nil {
		t.Fatalf("Setup returned an error for invalid log level: %v", err)
	}

	log.Debug("hidden")
	log.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry should be filtered at info level: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("info entry missing: %s", out)
	}
}

func TestContextLogger(t *testing.T) {
	buf, log := logger.NewTestLogger(t)
	fallback := slog.New(slog.NewJSONHandler(&logger.TestLogBuffer{}, nil))

	if got := logger.FromContext(context.Background()); got != nil {
		t.Errorf("expected nil logger from empty context, got %v", got)
	}
	if got := logger.FromContextOrDefault(context.Background(), fallback); got != fallback {
		t.Error("expected fallback logger from empty context")
	}
	if got := logger.FromContextOrDefault(context.Background(), nil); got != slog.Default() {
		t.Error("expected slog.Default() when no fallback is given")
	}

	ctx := logger.WithLogger(context.Background(), log.With("trace_id", "abc"))
	logger.FromContextOrDefault(ctx, fallback).Info("from context")

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("failed to parse entry: %v", err)
	}
	if entry["trace_id"] != "abc" {
		t.Errorf("expected trace_id attribute, got %v", entry)
	}
	logger.AssertLogContains(t, buf, "from context")
	logger.AssertLogNotContains(t, buf, "password")
}
