package bgi

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// captureLogs installs a debug-level text logger for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	ctx := context.Background()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(ctx, level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(ctx, slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("width", 8)}).(nopHandler); !ok {
		t.Error("WithAttrs() did not return a nopHandler")
	}
	if _, ok := h.WithGroup("canvas").(nopHandler); !ok {
		t.Error("WithGroup() did not return a nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("default logger is enabled")
	}
}

func TestSetLoggerNil(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if l := Logger(); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestCanvasLogsLifecycle(t *testing.T) {
	buf := captureLogs(t)

	cv, err := NewCanvas(8, 8)
	if err != nil {
		t.Fatalf("NewCanvas() = %v", err)
	}
	if err := cv.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	for _, want := range []string{"canvas created", "width=8", "canvas closed"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output missing %q:\n%s", want, buf)
		}
	}
}

func TestCanvasLogsFiles(t *testing.T) {
	buf := captureLogs(t)

	cv, err := NewCanvas(4, 4)
	if err != nil {
		t.Fatalf("NewCanvas() = %v", err)
	}
	defer cv.Close()
	path := filepath.Join(t.TempDir(), "out.png")
	if err := cv.SaveFile(path, true); err != nil {
		t.Fatalf("SaveFile() = %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"level=INFO msg=\"canvas saved\"", "format=png", "image loaded"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestFloodFillLogsStatistics(t *testing.T) {
	buf := captureLogs(t)

	cv, err := NewCanvas(20, 20)
	if err != nil {
		t.Fatalf("NewCanvas() = %v", err)
	}
	defer cv.Close()
	if err := cv.Rect(2, 2, 17, 17); err != nil {
		t.Fatalf("Rect() = %v", err)
	}
	if err := cv.FloodFill(9, 9, cv.Color()); err != nil {
		t.Fatalf("FloodFill() = %v", err)
	}
	if !strings.Contains(buf.String(), "msg=\"flood fill\"") || !strings.Contains(buf.String(), "painted=196") {
		t.Errorf("flood fill statistics not logged:\n%s", buf)
	}
	if strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("closed border logged a warning:\n%s", buf)
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Debug("flood fill", "painted", 1)
	}
}
