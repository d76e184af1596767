//go:build windows

package startup

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// runKeyRegistrar manages a value under HKCU\...\Run.
type runKeyRegistrar struct {
	exe func() (string, error)
}

func newPlatform(exe func() (string, error)) Registrar {
	return &runKeyRegistrar{exe: exe}
}

func (r *runKeyRegistrar) Enabled() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	_, _, err = k.GetStringValue(AppName)
	return err == nil
}

func (r *runKeyRegistrar) SetEnabled(enabled bool) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open run key: %w", err)
	}
	defer k.Close()

	if !enabled {
		if err := k.DeleteValue(AppName); err != nil && !errors.Is(err, registry.ErrNotExist) {
			return fmt.Errorf("failed to delete run value: %w", err)
		}
		return nil
	}

	exe, err := r.exe()
	if err != nil {
		return fmt.Errorf("failed to resolve executable: %w", err)
	}
	command := `"` + exe + `" ` + strings.Join(startupArgs, " ")
	if err := k.SetStringValue(AppName, command); err != nil {
		return fmt.Errorf("failed to set run value: %w", err)
	}
	return nil
}
