package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/autocleaner/autocleaner/internal/models"
)

// folderList is the scrolling list of tracked folders.
type folderList struct {
	folders      []models.TrackedFolder
	counts       map[string]int // expired files per path; absent while counting
	cursor       int
	scrollOffset int
	height       int
}

func newFolderList() *folderList {
	return &folderList{counts: map[string]int{}}
}

// setFolders replaces the list, keeping the cursor on the same path when it
// still exists.
func (fl *folderList) setFolders(folders []models.TrackedFolder) {
	var selected string
	if f, ok := fl.selected(); ok {
		selected = f.Path
	}

	fl.folders = folders
	fl.cursor = 0
	for i, f := range folders {
		if f.Path == selected {
			fl.cursor = i
			break
		}
	}
	fl.ensureVisible()
}

func (fl *folderList) setCounts(counts map[string]int) {
	fl.counts = counts
}

// setCount updates one folder's count.
func (fl *folderList) setCount(path string, n int) {
	fl.counts[path] = n
}

func (fl *folderList) selectPath(path string) {
	for i, f := range fl.folders {
		if f.Path == path {
			fl.cursor = i
			fl.ensureVisible()
			return
		}
	}
}

func (fl *folderList) selected() (models.TrackedFolder, bool) {
	if fl.cursor < 0 || fl.cursor >= len(fl.folders) {
		return models.TrackedFolder{}, false
	}
	return fl.folders[fl.cursor], true
}

func (fl *folderList) moveUp() {
	if fl.cursor > 0 {
		fl.cursor--
	}
	fl.ensureVisible()
}

func (fl *folderList) moveDown() {
	if fl.cursor < len(fl.folders)-1 {
		fl.cursor++
	}
	fl.ensureVisible()
}

func (fl *folderList) setHeight(h int) {
	fl.height = h
	fl.ensureVisible()
}

func (fl *folderList) ensureVisible() {
	if fl.height <= 0 {
		return
	}
	if fl.cursor < fl.scrollOffset {
		fl.scrollOffset = fl.cursor
	}
	if fl.cursor >= fl.scrollOffset+fl.height {
		fl.scrollOffset = fl.cursor - fl.height + 1
	}
	if fl.scrollOffset < 0 {
		fl.scrollOffset = 0
	}
}

// total returns the sum of known counts.
func (fl *folderList) total() int {
	n := 0
	for _, f := range fl.folders {
		n += fl.counts[f.Path]
	}
	return n
}

func (fl *folderList) view(width int) string {
	if len(fl.folders) == 0 {
		return emptyStyle.Render("No tracked folders. Press a to add one.")
	}

	const daysWidth, countWidth = 8, 14
	pathWidth := width - daysWidth - countWidth - 2
	if pathWidth < 10 {
		pathWidth = 10
	}

	end := len(fl.folders)
	if fl.height > 0 && fl.scrollOffset+fl.height < end {
		end = fl.scrollOffset + fl.height
	}

	lines := make([]string, 0, end-fl.scrollOffset)
	for i := fl.scrollOffset; i < end; i++ {
		f := fl.folders[i]

		path := ansi.Truncate(f.Path, pathWidth, "…")
		path += strings.Repeat(" ", pathWidth-lipgloss.Width(path))
		days := daysStyle.Render(fmt.Sprintf("%*s", daysWidth, fmt.Sprintf("%dd", f.Days)))

		var count string
		n, known := fl.counts[f.Path]
		switch {
		case !known:
			count = pendingStyle.Render(fmt.Sprintf("%*s", countWidth, "scanning…"))
		case n == 0:
			count = cleanStyle.Render(fmt.Sprintf("%*s", countWidth, "clean"))
		default:
			count = expiredStyle.Render(fmt.Sprintf("%*s", countWidth, fmt.Sprintf("%d expired", n)))
		}

		line := " " + path + days + count + " "
		if i == fl.cursor {
			line = selectedItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
