// Package launcher starts AutoCleaner roles as detached child processes.
package launcher

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Role arguments understood by the entry point.
const (
	RoleEditor      = "gui"
	RoleTray        = "tray"
	RoleTrayStartup = "tray-startup"
)

// Launcher spawns sibling role processes. Spawn failures are logged and
// reported as false; they never propagate, so the launching role stays usable.
type Launcher struct {
	logger     *slog.Logger
	executable func() (string, error)
	start      func(*exec.Cmd) error
}

// New creates a Launcher that re-executes the running binary.
func New(logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		logger:     logger.With("component", "launcher"),
		executable: os.Executable,
		start:      startDetached,
	}
}

// SpawnRole starts a detached copy of this executable with role as its sole
// argument and no console window.
func (l *Launcher) SpawnRole(role string) bool {
	exe, err := l.executable()
	if err != nil {
		l.logger.Warn("spawn ignored: cannot locate executable", "role", role, "error", err)
		return false
	}
	return l.spawn(role, exe, role)
}

// SpawnInTerminal starts terminal followed by this executable and role, e.g.
// ["xterm", "-e"] → `xterm -e /usr/bin/autocleaner gui`.
func (l *Launcher) SpawnInTerminal(terminal []string, role string) bool {
	if len(terminal) == 0 {
		l.logger.Warn("spawn ignored: no terminal command", "role", role)
		return false
	}
	exe, err := l.executable()
	if err != nil {
		l.logger.Warn("spawn ignored: cannot locate executable", "role", role, "error", err)
		return false
	}
	args := append(append([]string{}, terminal[1:]...), exe, role)
	return l.spawn(role, terminal[0], args...)
}

func (l *Launcher) spawn(role, name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)

	if err := l.start(cmd); err != nil {
		l.logger.Warn("spawn ignored: start failed", "role", role, "command", name, "error", err)
		return false
	}
	l.logger.Info("spawned role", "role", role, "command", name, "pid", pid(cmd))
	return true
}

// startDetached starts cmd and reaps it in the background so a long-lived
// launcher does not accumulate zombies.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func pid(cmd *exec.Cmd) int {
	if cmd.Process == nil {
		return 0
	}
	return cmd.Process.Pid
}
