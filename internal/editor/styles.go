package editor

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

var (
	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// Folder list styles.
var (
	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	daysStyle    = lipgloss.NewStyle().Foreground(colorDim)
	expiredStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	cleanStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	pendingStyle = lipgloss.NewStyle().Foreground(colorDim)
	emptyStyle   = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

// Tray badge styles.
var (
	trayRunningStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	trayStoppedStyle = lipgloss.NewStyle().Foreground(colorRed)
	trayUnknownStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	formLabelStyle = lipgloss.NewStyle().Bold(true)
	formErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// Key hint styles for status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

var logTimeStyle = lipgloss.NewStyle().Foreground(colorDim)
