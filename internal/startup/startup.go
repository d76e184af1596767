// Package startup registers AutoCleaner to run its silent scan at login.
package startup

import (
	"github.com/autocleaner/autocleaner/internal/config"
	"github.com/autocleaner/autocleaner/internal/launcher"
)

// AppName is the name used for autostart entries.
const AppName = "AutoCleaner"

// Registrar queries and changes the run-at-login registration.
type Registrar interface {
	Enabled() bool
	SetEnabled(enabled bool) error
}

// New returns the registrar for this platform. The registered command runs
// the saved executable path with the tray-startup role.
func New() Registrar {
	return newPlatform(config.ExecPath)
}

// startupArgs are the arguments passed to the executable at login.
var startupArgs = []string{launcher.RoleTrayStartup}
