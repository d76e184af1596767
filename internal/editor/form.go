package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/autocleaner/autocleaner/internal/models"
)

const (
	fieldPath = iota
	fieldDays
	fieldCount
)

// folderForm is the add/edit folder overlay.
type folderForm struct {
	orig string // path being edited; empty when adding

	pathInput textinput.Model
	daysInput textinput.Model

	focusIndex int
	err        error
	width      int
}

func newFolderForm(width int) *folderForm {
	pi := textinput.New()
	pi.Placeholder = "/home/me/Downloads"
	pi.CharLimit = 4096
	pi.Width = formInnerWidth(width)

	di := textinput.New()
	di.Placeholder = "30"
	di.CharLimit = 10
	di.Width = 12

	f := &folderForm{pathInput: pi, daysInput: di, width: width}
	f.pathInput.Focus()
	return f
}

// preFill loads an existing folder for editing.
func (f *folderForm) preFill(folder models.TrackedFolder) {
	f.orig = folder.Path
	f.pathInput.SetValue(folder.Path)
	f.daysInput.SetValue(strconv.FormatUint(uint64(folder.Days), 10))
}

func (f *folderForm) focusNext() { f.setFocus((f.focusIndex + 1) % fieldCount) }

func (f *folderForm) focusPrev() { f.setFocus((f.focusIndex + fieldCount - 1) % fieldCount) }

func (f *folderForm) setFocus(i int) {
	f.focusIndex = i
	f.pathInput.Blur()
	f.daysInput.Blur()
	if i == fieldPath {
		f.pathInput.Focus()
	} else {
		f.daysInput.Focus()
	}
}

// update forwards msg to the focused input.
func (f *folderForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focusIndex == fieldPath {
		f.pathInput, cmd = f.pathInput.Update(msg)
	} else {
		f.daysInput, cmd = f.daysInput.Update(msg)
	}
	return cmd
}

// value validates the inputs. The path is checked for existence when saved.
func (f *folderForm) value() (models.TrackedFolder, error) {
	path := strings.TrimSpace(f.pathInput.Value())
	if path == "" {
		return models.TrackedFolder{}, errors.New("folder path is required")
	}
	raw := strings.TrimSpace(f.daysInput.Value())
	days, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return models.TrackedFolder{}, fmt.Errorf("days must be a whole number, got %q", raw)
	}
	return models.TrackedFolder{Path: path, Days: uint32(days)}, nil
}

func (f *folderForm) view() string {
	title := "Add Folder"
	if f.orig != "" {
		title = "Edit Folder"
	}

	parts := []string{
		overlayTitleStyle.Render(title),
		formLabelStyle.Render("Folder:"),
		f.pathInput.View(),
		"",
		formLabelStyle.Render("Delete files older than (days):"),
		f.daysInput.View(),
		"",
	}
	if f.err != nil {
		parts = append(parts, formErrorStyle.Render(f.err.Error()), "")
	}
	parts = append(parts, hintStyle.Render("Enter save  |  Tab next field  |  Esc cancel"))

	return overlayStyle.Width(formWidth(f.width)).Render(strings.Join(parts, "\n"))
}

// textinputBlink starts the cursor blink of a freshly focused input.
func textinputBlink() tea.Cmd {
	return textinput.Blink
}

func formWidth(width int) int {
	w := width - 10
	if w > 80 {
		w = 80
	}
	if w < 40 {
		w = 40
	}
	return w
}

func formInnerWidth(width int) int {
	return formWidth(width) - 8
}
