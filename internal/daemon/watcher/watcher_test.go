package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/autocleaner/autocleaner/internal/config"
	"github.com/autocleaner/autocleaner/internal/logging"
	"github.com/autocleaner/autocleaner/internal/models"
)

func startWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := New(dir, logging.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(w.Stop)
	return w, dir
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestSaveProducesOneDebouncedEvent(t *testing.T) {
	w, dir := startWatcher(t)

	list := models.NewFolderList()
	list.Folders = append(list.Folders, models.TrackedFolder{Path: "/data", Days: 7})
	if err := config.SaveYAML(filepath.Join(dir, config.FoldersFileName), list); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, w)
	if ev.Type != EventFoldersChanged {
		t.Fatalf("event type = %v, want folders", ev.Type)
	}

	select {
	case extra := <-w.Events():
		t.Errorf("unexpected second event %+v", extra)
	case <-time.After(3 * DefaultDebounce):
	}
}

func TestSettingsAndUnrelatedFiles(t *testing.T) {
	w, dir := startWatcher(t)

	if err := os.WriteFile(filepath.Join(dir, "tray.lock"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := config.SaveYAML(filepath.Join(dir, config.SettingsFileName), models.NewSettings()); err != nil {
		t.Fatal(err)
	}

	if ev := waitEvent(t, w); ev.Type != EventSettingsChanged {
		t.Fatalf("event type = %v, want settings", ev.Type)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, _ := startWatcher(t)
	w.Stop()
	w.Stop()
}
