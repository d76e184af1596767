package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderOverlay renders an overlay centered on top of the base view.
func renderOverlay(base, overlayContent string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range baseLines {
		baseLines[i] = overlayDimStyle.Render(ansi.Strip(line))
	}
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	overlayLines := strings.Split(overlayContent, "\n")
	overlayWidth := 0
	for _, l := range overlayLines {
		if w := lipgloss.Width(l); w > overlayWidth {
			overlayWidth = w
		}
	}

	top := (height - len(overlayLines)) / 2
	left := (width - overlayWidth) / 2
	if top < 1 {
		top = 1
	}
	if left < 0 {
		left = 0
	}

	// Place overlay on top of dimmed background using ANSI-aware slicing
	for i, line := range overlayLines {
		row := top + i
		if row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		bg := baseLines[row]
		bgWidth := lipgloss.Width(bg)

		leftPart := ansi.Truncate(bg, left, "")
		if pad := left - lipgloss.Width(leftPart); pad > 0 {
			leftPart += strings.Repeat(" ", pad)
		}

		rightPart := ""
		rightStart := left + lipgloss.Width(line)
		if rightStart < bgWidth {
			rightPart = ansi.Cut(bg, rightStart, bgWidth)
		}

		baseLines[row] = leftPart + "\033[0m" + line + "\033[0m" + rightPart
	}

	return strings.Join(baseLines, "\n")
}
