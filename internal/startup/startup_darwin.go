//go:build darwin

package startup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const launchAgentLabel = "io.autocleaner.tray"

// launchAgentRegistrar manages a per-user LaunchAgent plist.
type launchAgentRegistrar struct {
	exe func() (string, error)
}

func newPlatform(exe func() (string, error)) Registrar {
	return &launchAgentRegistrar{exe: exe}
}

func (r *launchAgentRegistrar) path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", launchAgentLabel+".plist"), nil
}

func (r *launchAgentRegistrar) Enabled() bool {
	path, err := r.path()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (r *launchAgentRegistrar) SetEnabled(enabled bool) error {
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
	return os.WriteFile(path, plist(exe), 0o644)
}

func plist(exe string) []byte {
	var b bytes.Buffer
	esc := func(s string) string {
		var e bytes.Buffer
		_ = xml.EscapeText(&e, []byte(s))
		return e.String()
	}
	b.WriteString(xml.Header)
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString("<plist version=\"1.0\">\n<dict>\n")
	b.WriteString("\t<key>Label</key>\n\t<string>" + launchAgentLabel + "</string>\n")
	b.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n")
	b.WriteString("\t\t<string>" + esc(exe) + "</string>\n")
	for _, a := range startupArgs {
		b.WriteString("\t\t<string>" + esc(a) + "</string>\n")
	}
	b.WriteString("\t</array>\n")
	b.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	b.WriteString("</dict>\n</plist>\n")
	return b.Bytes()
}
