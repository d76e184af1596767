//go:build unix && !darwin

package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const desktopFileName = "autocleaner.desktop"

// xdgRegistrar manages an XDG autostart desktop entry.
type xdgRegistrar struct {
	exe func() (string, error)
}

func newPlatform(exe func() (string, error)) Registrar {
	return &xdgRegistrar{exe: exe}
}

// autostartDir returns $XDG_CONFIG_HOME/autostart (~/.config/autostart).
func autostartDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "autostart"), nil
}

func (r *xdgRegistrar) path() (string, error) {
	dir, err := autostartDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, desktopFileName), nil
}

func (r *xdgRegistrar) Enabled() bool {
	path, err := r.path()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (r *xdgRegistrar) SetEnabled(enabled bool) error {
	path, err := r.path()
	if err != nil {
		return err
	}

	if !enabled {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		return nil
	}

	exe, err := r.exe()
	if err != nil {
		return fmt.Errorf("failed to resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(desktopEntry(exe)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func desktopEntry(exe string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=" + AppName + "\n")
	b.WriteString("Comment=Remove expired files from tracked folders\n")
	b.WriteString("Exec=" + quoteExec(exe) + " " + strings.Join(startupArgs, " ") + "\n")
	b.WriteString("Terminal=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.String()
}

// quoteExec quotes an Exec key argument. Desktop entries unescape string
// values before applying the Exec quoting rules, so the backslashes added by
// quoting are escaped once more.
func quoteExec(arg string) string {
	quoted := execQuoter.Replace(arg)
	return `"` + strings.ReplaceAll(quoted, `\`, `\\`) + `"`
}

var execQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`, `%`, `%%`)
