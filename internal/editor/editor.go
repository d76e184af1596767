// Package editor implements the terminal folder editor: the list of tracked
// folders with live expired counts, add/edit/remove, on-demand cleaning and
// the tray agent status.
package editor

import (
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autocleaner/autocleaner/internal/config"
	"github.com/autocleaner/autocleaner/internal/daemon/watcher"
	"github.com/autocleaner/autocleaner/internal/shm"
)

// Counter counts or removes expired files below one folder.
type Counter interface {
	Scan(path string, days uint32) int
	Clean(path string, days uint32) int
}

// Spawner starts another role of this executable.
type Spawner interface {
	SpawnRole(role string) bool
}

// Options are the editor's collaborators.
type Options struct {
	Scanner    Counter
	Launcher   Spawner
	TrayActive shm.Cell // nil when shared memory is unavailable
	// Active is set while the editor runs; may be nil.
	Active shm.Cell
	Logger     *slog.Logger
}

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run shows the editor until the user quits.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	logger := opts.Logger.With("component", "editor")

	ref := &programRef{}
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	ref.Set(p)
	defer ref.Clear()

	stop := watchFolders(ref, logger)
	defer stop()

	if opts.Active != nil {
		opts.Active.Store(true)
		defer opts.Active.Store(false)
	}

	_, err := p.Run()
	return err
}

// watchFolders forwards changes of the folder list made by other processes
// to the program until stop is called.
func watchFolders(ref *programRef, logger *slog.Logger) (stop func()) {
	noop := func() {}

	dir, err := config.AppDir()
	if err == nil {
		err = config.EnsureAppDir()
	}
	if err != nil {
		logger.Warn("folder watch disabled", "error", err)
		return noop
	}

	w, err := watcher.New(dir, logger)
	if err != nil {
		logger.Warn("folder watch disabled", "error", err)
		return noop
	}
	if err := w.Start(); err != nil {
		logger.Warn("folder watch disabled", "dir", dir, "error", err)
		w.Stop()
		return noop
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev := <-w.Events():
				if ev.Type == watcher.EventFoldersChanged {
					ref.Send(foldersChangedMsg{})
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		w.Stop()
		close(done)
	}
}
