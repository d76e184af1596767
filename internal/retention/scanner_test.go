package retention

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/autocleaner/autocleaner/internal/models"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestScanner() *Scanner {
	return New(
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

// writeAged creates dir/name with a modification time age before fixedNow.
func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := fixedNow.Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanAndCleanScenario(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "recent.txt", 5*Day)
	writeAged(t, dir, "old.txt", 100*Day)
	ancient := writeAged(t, dir, "ancient.txt", 300*Day)

	s := newTestScanner()

	if got := s.Scan(dir, 200); got != 1 {
		t.Fatalf("Scan(dir, 200) = %d, want 1", got)
	}
	if got := s.Clean(dir, 200); got != 1 {
		t.Fatalf("Clean(dir, 200) = %d, want 1", got)
	}
	if _, err := os.Stat(ancient); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed, stat err = %v", ancient, err)
	}
	if got := s.Clean(dir, 200); got != 0 {
		t.Fatalf("second Clean(dir, 200) = %d, want 0", got)
	}
	if got := s.Scan(dir, 50); got != 1 {
		t.Errorf("Scan(dir, 50) = %d, want 1", got)
	}
}

func TestThresholdBoundary(t *testing.T) {
	tests := []struct {
		name    string
		age     time.Duration
		expired bool
	}{
		{name: "exactly at threshold", age: 10 * Day, expired: false},
		{name: "one second older", age: 10*Day + time.Second, expired: true},
		{name: "one second newer", age: 10*Day - time.Second, expired: false},
		{name: "in the future", age: -Day, expired: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeAged(t, dir, "f", tt.age)

			want := 0
			if tt.expired {
				want = 1
			}
			if got := newTestScanner().Scan(dir, 10); got != want {
				t.Errorf("Scan() = %d, want %d", got, want)
			}
		})
	}
}

func TestZeroDaysExpiresEverythingInThePast(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "a", time.Second)
	writeAged(t, dir, "b", 0)

	if got := newTestScanner().Scan(dir, 0); got != 1 {
		t.Errorf("Scan(dir, 0) = %d, want 1", got)
	}
}

func TestScanRecursesAndMatchesClean(t *testing.T) {
	dir := t.TempDir()
	copyDir := t.TempDir()
	for _, root := range []string{dir, copyDir} {
		writeAged(t, root, "a/b/c/deep.log", 40*Day)
		writeAged(t, root, "a/shallow.log", 40*Day)
		writeAged(t, root, "a/b/fresh.log", Day)
		writeAged(t, root, "top.log", 31*Day)
	}

	s := newTestScanner()
	first := s.Scan(dir, 30)
	second := s.Scan(dir, 30)
	if first != 3 || second != first {
		t.Fatalf("Scan() = %d then %d, want 3 both times", first, second)
	}
	if removed := s.Clean(copyDir, 30); removed != first {
		t.Errorf("Clean() on identical copy = %d, want %d", removed, first)
	}
	if _, err := os.Stat(filepath.Join(copyDir, "a", "b", "fresh.log")); err != nil {
		t.Errorf("fresh file should survive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(copyDir, "a", "b", "c")); err != nil {
		t.Errorf("directories should survive: %v", err)
	}
}

func TestSymlinksAreNotFollowed(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	outside := t.TempDir()
	target := writeAged(t, outside, "target.txt", 400*Day)

	if err := os.Symlink(target, filepath.Join(dir, "link.txt")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(dir, filepath.Join(dir, "loop")); err != nil {
		t.Fatal(err)
	}
	writeAged(t, dir, "real.txt", 400*Day)

	s := newTestScanner()
	if got := s.Scan(dir, 1); got != 1 {
		t.Fatalf("Scan() = %d, want 1", got)
	}
	if got := s.Clean(dir, 1); got != 1 {
		t.Fatalf("Clean() = %d, want 1", got)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("symlink target outside the tree was touched: %v", err)
	}
}

func TestMissingRoot(t *testing.T) {
	s := newTestScanner()
	missing := filepath.Join(t.TempDir(), "nope")

	if got := s.Scan(missing, 1); got != 0 {
		t.Errorf("Scan(missing) = %d", got)
	}
	if got := s.Clean(missing, 1); got != 0 {
		t.Errorf("Clean(missing) = %d", got)
	}
}

func TestCleanSkipsUndeletableFiles(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	dir := t.TempDir()
	writeAged(t, dir, "locked/a.txt", 90*Day)
	writeAged(t, dir, "open/b.txt", 90*Day)

	locked := filepath.Join(dir, "locked")
	if err := os.Chmod(locked, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	s := newTestScanner()
	if got := s.Clean(dir, 30); got != 1 {
		t.Fatalf("Clean() = %d, want 1", got)
	}
	if got := s.Scan(dir, 30); got != 1 {
		t.Errorf("Scan() after partial clean = %d, want 1", got)
	}
}

func TestFolders(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeAged(t, a, "1", 20*Day)
	writeAged(t, a, "2", 20*Day)
	writeAged(t, b, "3", 20*Day)

	folders := []models.TrackedFolder{
		{Path: a, Days: 10},
		{Path: b, Days: 30},
	}

	s := newTestScanner()
	if got := s.ScanFolders(folders); got != 2 {
		t.Fatalf("ScanFolders() = %d, want 2", got)
	}
	if got := s.CleanFolders(folders); got != 2 {
		t.Fatalf("CleanFolders() = %d, want 2", got)
	}
	if got := s.ScanFolders(folders); got != 0 {
		t.Fatalf("ScanFolders() after clean = %d, want 0", got)
	}
	if got := s.ScanFolders(nil); got != 0 {
		t.Errorf("ScanFolders(nil) = %d", got)
	}
}

func TestCleanExceptKeepsSelectedFiles(t *testing.T) {
	dir := t.TempDir()
	live := writeAged(t, dir, "tray.log", 30*Day)
	stale := writeAged(t, dir, "old.log", 30*Day)

	s := newTestScanner()
	keep := func(file string) bool { return file == live }

	if got := s.CleanExcept(dir, 14, keep); got != 1 {
		t.Errorf("CleanExcept() = %d, want 1", got)
	}
	if _, err := os.Stat(live); err != nil {
		t.Errorf("kept file removed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("expired file still present, stat error = %v", err)
	}
	if got := s.Scan(dir, 14); got != 1 {
		t.Errorf("Scan() after CleanExcept = %d, want 1 (kept files still count)", got)
	}
}
