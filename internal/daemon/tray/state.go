// Package tray implements the tray agent's menu state machine and the event
// loop that drives it. The icon itself lives in package trayicon.
package tray

// MenuState is the data a tray menu is built from. It is a value: a change
// produces a new MenuState that replaces the installed one.
type MenuState struct {
	StartupEnabled bool
}

// Menu is the live tray menu.
type Menu interface {
	// SetMenu installs a menu built from state.
	SetMenu(state MenuState) error
	// ShowMenu pops the menu up at the tray icon.
	ShowMenu() error
}

// Launcher starts other roles.
type Launcher interface {
	SpawnRole(role string) bool
}

// Scanner runs retention passes over the tracked folders.
type Scanner interface {
	ScanAndNotify() int
	CleanAndNotify() int
}

// Registrar queries and changes the run-at-login registration.
type Registrar interface {
	Enabled() bool
	SetEnabled(enabled bool) error
}
