package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/autocleaner/autocleaner/internal/retention"
)

func TestNewWritesRoleFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, closer, err := New(Options{Dir: dir, Role: "tray", Level: "warn", Console: &console})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept", "path", "/tmp/x")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tray.log"))
	if err != nil {
		t.Fatal(err)
	}
	for _, out := range []string{string(data), console.String()} {
		if strings.Contains(out, "dropped") {
			t.Errorf("info message written at warn level: %q", out)
		}
		if !strings.Contains(out, "kept") || !strings.Contains(out, "role=tray") {
			t.Errorf("missing warn message or role attribute: %q", out)
		}
	}
}

func TestNewWithoutSinks(t *testing.T) {
	logger, closer, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Error("nowhere")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// writeOld creates dir/name last modified age ago.
func writeOld(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRefreshesExistingLog(t *testing.T) {
	dir := t.TempDir()
	path := writeOld(t, dir, "tray.log", 30*retention.Day)

	_, closer, err := New(Options{Dir: dir, Role: "tray"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closer.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if age := time.Since(info.ModTime()); age > time.Hour {
		t.Errorf("opened log is %v old, want it refreshed", age)
	}
}

func TestPruneKeepsOpenRoleLogs(t *testing.T) {
	dir := t.TempDir()
	trayLog := writeOld(t, dir, "tray.log", 30*retention.Day)
	guiLog := writeOld(t, dir, "gui.log", 30*retention.Day)
	stale := writeOld(t, dir, "launcher.log", 30*retention.Day)
	writeOld(t, dir, "recent.log", time.Hour)

	logger, closer, err := New(Options{Dir: dir, Role: "tray", Level: "info"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closer.Close()

	scanner := retention.New(retention.WithLogger(Discard()))
	if got := Prune(dir, 14, scanner, "tray", "gui"); got != 1 {
		t.Errorf("Prune() = %d, want 1", got)
	}
	for _, path := range []string{trayLog, guiLog} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("live log removed: %v", err)
		}
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale log kept, stat error = %v", err)
	}

	logger.Info("after prune")
	data, err := os.ReadFile(trayLog)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "after prune") {
		t.Errorf("tray.log missing record written after prune: %q", data)
	}
}

func TestPruneOnlyRefreshedLogSurvives(t *testing.T) {
	dir := t.TempDir()
	writeOld(t, dir, "tray.log", 30*retention.Day)
	guiLog := writeOld(t, dir, "gui.log", 30*retention.Day)

	_, closer, err := New(Options{Dir: dir, Role: "tray"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closer.Close()

	// No live roles named: the freshly opened tray.log is young enough.
	scanner := retention.New(retention.WithLogger(Discard()))
	if got := Prune(dir, 14, scanner); got != 1 {
		t.Errorf("Prune() = %d, want 1", got)
	}
	if _, err := os.Stat(guiLog); !os.IsNotExist(err) {
		t.Errorf("gui.log kept without a live editor, stat error = %v", err)
	}
}

func TestPruneZeroDaysKeepsEverything(t *testing.T) {
	dir := t.TempDir()
	path := writeOld(t, dir, "launcher.log", 300*retention.Day)

	scanner := retention.New(retention.WithLogger(Discard()))
	if got := Prune(dir, 0, scanner); got != 0 {
		t.Errorf("Prune() = %d, want 0", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log removed with zero retention: %v", err)
	}
}
