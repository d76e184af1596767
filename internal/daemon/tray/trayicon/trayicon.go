// Package trayicon is the system tray icon backing the tray loop. It is
// kept apart from the loop because it needs the platform tray libraries.
package trayicon

import (
	"github.com/getlantern/systray"

	"github.com/autocleaner/autocleaner/internal/buildinfo"
	"github.com/autocleaner/autocleaner/internal/daemon/tray"
)

// UI is the system tray icon. It is both the tray.Source of raw events and
// the tray.Menu the loop installs state into.
type UI struct {
	events chan tray.Event
	done   chan struct{}

	startupItem *systray.MenuItem
	editorItem  *systray.MenuItem
	scanItem    *systray.MenuItem
	cleanItem   *systray.MenuItem
	exitItem    *systray.MenuItem
}

var (
	_ tray.Source = (*UI)(nil)
	_ tray.Menu   = (*UI)(nil)
)

// Run starts the system tray. This blocks the calling goroutine (must be
// main): it owns the OS message pump until Quit is called.
// onReady is called with the UI once the icon exists; onExit after the pump
// has stopped.
func Run(onReady func(ui *UI), onExit func()) {
	ui := &UI{
		events: make(chan tray.Event),
		done:   make(chan struct{}),
	}
	systray.Run(func() {
		ui.build()
		go ui.forwardClicks()
		onReady(ui)
	}, func() {
		close(ui.done)
		if onExit != nil {
			onExit()
		}
	})
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func (ui *UI) build() {
	systray.SetIcon(iconData)
	systray.SetTooltip("AutoCleaner " + buildinfo.Summary())

	ui.startupItem = systray.AddMenuItemCheckbox("Run at Startup", "Scan tracked folders when you log in", false)
	systray.AddSeparator()
	ui.editorItem = systray.AddMenuItem("Open Editor", "Edit tracked folders")
	ui.scanItem = systray.AddMenuItem("Scan Now", "Count expired files")
	ui.cleanItem = systray.AddMenuItem("Clean Now", "Delete expired files")
	systray.AddSeparator()
	ui.exitItem = systray.AddMenuItem("Exit", "Stop the AutoCleaner tray agent")
}

// forwardClicks translates menu clicks into events until the tray exits.
func (ui *UI) forwardClicks() {
	for {
		var ev tray.Event
		select {
		case <-ui.done:
			return
		case <-ui.startupItem.ClickedCh:
			ev = tray.ToggleStartup
		case <-ui.editorItem.ClickedCh:
			ev = tray.OpenEditor
		case <-ui.scanItem.ClickedCh:
			ev = tray.ScanNow
		case <-ui.cleanItem.ClickedCh:
			ev = tray.CleanNow
		case <-ui.exitItem.ClickedCh:
			ev = tray.Exit
		}
		select {
		case ui.events <- ev:
		case <-ui.done:
			return
		}
	}
}

// Next implements tray.Source.
func (ui *UI) Next() (tray.Event, bool) {
	select {
	case ev := <-ui.events:
		return ev, true
	case <-ui.done:
		return 0, false
	}
}

// SetMenu implements tray.Menu.
func (ui *UI) SetMenu(state tray.MenuState) error {
	if state.StartupEnabled {
		ui.startupItem.Check()
	} else {
		ui.startupItem.Uncheck()
	}
	return nil
}

// ShowMenu implements tray.Menu. The platform tray opens the menu on click by
// itself, so there is nothing to do.
func (ui *UI) ShowMenu() error {
	return nil
}
