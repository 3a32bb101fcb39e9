package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLoggingToFile(t *testing.T) {
	origStdout := stdout
	var console bytes.Buffer
	stdout = &console
	t.Cleanup(func() {
		stdout = origStdout
		_ = Close()
	})

	logPath := filepath.Join(t.TempDir(), "nested", "losdash.log")
	if err := Init(logPath, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	LogEvent("hello %s", "world")
	slog.Warn("could not use metrics artifact", "path", "artifacts/metrics.json")
	slog.Debug("hidden at info level")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "level=WARN") || !strings.Contains(content, "path=artifacts/metrics.json") {
		t.Fatalf("expected structured warning, got: %s", content)
	}
	if strings.Contains(content, "hidden at info level") {
		t.Fatalf("debug line should be filtered, got: %s", content)
	}
	if !strings.Contains(console.String(), "hello world") {
		t.Fatalf("expected console output, got: %s", console.String())
	}
}

func TestInitDebugLevel(t *testing.T) {
	origStdout := stdout
	var console bytes.Buffer
	stdout = &console
	t.Cleanup(func() {
		stdout = origStdout
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	})

	if err := Init("", true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	slog.Debug("section dropped", "section", "top_predictors")
	if !strings.Contains(console.String(), "section=top_predictors") {
		t.Fatalf("expected debug output, got: %s", console.String())
	}
}

func TestNewHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	if NewHandler(&buf, false).Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("info handler should not enable debug")
	}
	if !NewHandler(&buf, true).Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug handler should enable debug")
	}
}

func TestCloseWithoutFile(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close without file: %v", err)
	}
}

func TestSetConsole(t *testing.T) {
	origStdout := stdout
	t.Cleanup(func() {
		stdout = origStdout
		_ = Close()
	})

	var console bytes.Buffer
	SetConsole(&console)
	if err := Init("", false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	slog.Info("routed")
	if !strings.Contains(console.String(), "routed") {
		t.Fatalf("expected console output, got: %q", console.String())
	}

	SetConsole(nil)
	if stdout != os.Stdout {
		t.Fatal("nil writer should restore os.Stdout")
	}
}
