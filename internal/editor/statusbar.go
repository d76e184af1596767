package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func renderStatusBar(m *Model, width int) string {
	switch m.confirmMode {
	case confirmRemove:
		return renderConfirmBar("Stop tracking "+m.confirmPath+"? (y/n)", width)
	case confirmClean:
		return renderConfirmBar("Delete expired files in "+m.confirmPath+"? (y/n)", width)
	}

	if m.err != nil {
		return statusBarStyle.
			Background(colorRed).
			Width(width).
			Render(truncate(" "+m.err.Error(), width))
	}

	return statusBarStyle.Width(width).Render(truncate(" "+keyHints(m), width))
}

func keyHints(m *Model) string {
	if m.form != nil {
		return keyHint("Enter", "save") + "  " + keyHint("Tab", "next") + "  " + keyHint("Esc", "cancel")
	}

	hints := []string{
		keyHint("q", "quit"),
		keyHint("j/k", "navigate"),
		keyHint("a", "add"),
	}
	if len(m.list.folders) > 0 {
		hints = append(hints,
			keyHint("e", "edit"),
			keyHint("x", "remove"),
			keyHint("c", "clean"),
			keyHint("r", "rescan"),
		)
	}
	if m.tray != nil && !m.trayActive {
		hints = append(hints, keyHint("t", "start tray"))
	}
	return strings.Join(hints, "  ")
}

func keyHint(k, desc string) string {
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(truncate(" "+msg, width))
}

// truncate shortens a possibly styled line to width cells.
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
