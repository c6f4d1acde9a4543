package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init("debug", "text"); err != nil {
		t.Fatalf("failed to initialize text logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init("info", "json"); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	if err := Init("loud", "text"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if err := Init("info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerNamed(t *testing.T) {
	if err := Init("info", "text"); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	named := Named("test")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(context.Background(), "test message")
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	var lv slog.LevelVar
	lv.Set(slog.LevelInfo)

	l := New(&buf, WithFormat("json"), WithLevelVar(&lv)).Named("engine").With(String("request_id", "r-1"))
	l.Warn(context.Background(), "aggregate write failed", Int("count", 3), Error(errors.New("boom")))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if rec["msg"] != "aggregate write failed" || rec["logger"] != "engine" || rec["request_id"] != "r-1" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["error"] != "boom" || rec["count"] != float64(3) {
		t.Fatalf("fields not encoded: %v", rec)
	}
	if src, _ := rec["source"].(string); !strings.Contains(src, "logger_test.go") {
		t.Fatalf("expected caller source, got %q", src)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	var lv slog.LevelVar
	lv.Set(slog.LevelWarn)

	l := New(&buf, WithLevelVar(&lv))
	l.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %s", buf.String())
	}
	l.Error(context.Background(), "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("error should be logged: %s", buf.String())
	}
}

func TestNop(t *testing.T) {
	Nop().Error(context.Background(), "discarded", Any("k", 1))
}
