package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/autocleaner/autocleaner/internal/buildinfo"
	"github.com/autocleaner/autocleaner/internal/config"
	"github.com/autocleaner/autocleaner/internal/editor"
	"github.com/autocleaner/autocleaner/internal/launcher"
	"github.com/autocleaner/autocleaner/internal/lock"
	"github.com/autocleaner/autocleaner/internal/logging"
	"github.com/autocleaner/autocleaner/internal/retention"
	"github.com/autocleaner/autocleaner/internal/shm"
)

// runBootstrap records the executable path and starts the tray agent and
// the editor as detached children.
func runBootstrap() error {
	logger, closer := roleLogger("launcher")
	defer closer.Close()

	if exe, err := os.Executable(); err != nil {
		logger.Warn("exec path not saved: executable unknown", "error", err)
	} else if err := config.SaveExecPath(exe); err != nil {
		logger.Warn("exec path not saved", "path", exe, "error", err)
	}

	l := launcher.New(logger)
	l.SpawnRole(launcher.RoleTray)
	l.SpawnRole(launcher.RoleEditor)
	return nil
}

// runEditor runs the terminal folder editor. Without a terminal on stdio the
// editor is relaunched inside a terminal emulator.
func runEditor() error {
	logger, closer := roleLogger(launcher.RoleEditor)
	defer closer.Close()

	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		relaunchInTerminal(logger)
		return nil
	}

	h, ok := holdRole(launcher.RoleEditor, logger)
	if !ok {
		return nil
	}
	defer h.Release()

	opts := editor.Options{
		Scanner:  retention.New(retention.WithLogger(logger)),
		Launcher: launcher.New(logger),
		Logger:   logger,
	}
	defer shm.Default().Close()
	if flag, err := shm.Default().Flag(shm.TrayActiveFlag); err != nil {
		logger.Warn("tray status unavailable", "error", err)
	} else {
		opts.TrayActive = flag
	}
	if flag, err := shm.Default().Flag(shm.EditorActiveFlag); err != nil {
		logger.Warn("editor flag unavailable", "error", err)
	} else {
		opts.Active = flag
	}

	if err := editor.Run(opts); err != nil {
		logger.Error("editor stopped", "error", err)
	}
	return nil
}

// relaunchInTerminal opens the editor role in a terminal emulator, unless
// another editor already holds the role.
func relaunchInTerminal(logger *slog.Logger) {
	h, ok := holdRole(launcher.RoleEditor, logger)
	if !ok {
		return
	}
	h.Release()

	terminal := config.LoadSettingsOrDefault().Editor.Terminal
	if len(terminal) == 0 {
		terminal = launcher.DetectTerminal()
	}
	if len(terminal) == 0 {
		logger.Warn("editor not started: no terminal emulator found")
		return
	}
	launcher.New(logger).SpawnInTerminal(terminal, launcher.RoleEditor)
}

// holdRole acquires the lock for role. It reports false when the process
// must exit silently, either because another instance owns the role or
// because the lock file is unusable.
func holdRole(role string, logger *slog.Logger) (*lock.Handle, bool) {
	if err := config.EnsureAppDir(); err != nil {
		logger.Warn("exiting: app dir unavailable", "error", err)
		return nil, false
	}
	path, err := config.LockFile(role)
	if err != nil {
		logger.Warn("exiting: lock path unavailable", "error", err)
		return nil, false
	}

	h, err := lock.Acquire(path)
	switch {
	case errors.Is(err, lock.ErrHeld):
		logger.Info("exiting: another instance owns the role", "lock", path)
		return nil, false
	case err != nil:
		logger.Warn("exiting: lock unavailable", "lock", path, "error", err)
		return nil, false
	}
	return h, true
}

// roleLogger builds the logger for a role from settings. It never fails: when
// the log file cannot be opened the logger falls back to the console.
func roleLogger(role string) (*slog.Logger, io.Closer) {
	settings := config.LoadSettingsOrDefault()

	var console io.Writer
	if isTerminal(os.Stderr) {
		console = os.Stderr
	}
	opts := logging.Options{Role: role, Level: settings.Log.Level, Console: console}

	if err := config.EnsureLogsDir(); err == nil {
		if dir, err := config.LogsDir(); err == nil {
			opts.Dir = dir
		}
	}

	logger, closer, err := logging.New(opts)
	if err != nil {
		opts.Dir = ""
		logger, closer, _ = logging.New(opts)
		logger.Warn("log file unavailable", "error", err)
	}
	logger.Debug("role starting", "version", buildinfo.Summary())
	return logger, closer
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
