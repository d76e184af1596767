//go:build unix

package shm

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestSegmentNameIsPerUser(t *testing.T) {
	tests := []struct {
		name string
		uid  int
		want string
	}{
		{TrayActiveFlag, 1000, "autocleaner.tray-active.1000"},
		{TrayActiveFlag, 0, "autocleaner.tray-active.0"},
		{"a/b", 65534, "a_b.65534"},
	}
	for _, tt := range tests {
		if got := segmentName(tt.name, tt.uid); got != tt.want {
			t.Errorf("segmentName(%q, %d) = %q, want %q", tt.name, tt.uid, got, tt.want)
		}
	}
	if segmentName(TrayActiveFlag, 1000) == segmentName(TrayActiveFlag, 1001) {
		t.Error("different users share a segment name")
	}
}

func TestSegmentPrefersRuntimeDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)

	path := segmentPath(TrayActiveFlag)
	if filepath.Dir(path) != dir {
		t.Errorf("segmentPath() = %q, want it inside %q", path, dir)
	}
	if !strings.HasSuffix(path, "."+strconv.Itoa(os.Getuid())) {
		t.Errorf("segmentPath() = %q, missing uid suffix", path)
	}
}

func TestOpenIgnoresForeignSegment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	name := testName(t)

	// A segment another user created under the unscoped name, unreadable to us.
	foreign := filepath.Join(dir, name)
	if err := os.WriteFile(foreign, make([]byte, segmentSize), 0o000); err != nil {
		t.Fatal(err)
	}

	f, err := Open(name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	if !f.Owner() {
		t.Error("Open() attached to a segment it did not create")
	}
	if f.Load() {
		t.Error("fresh flag should read false")
	}
}
