package editor

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autocleaner/autocleaner/internal/shm"
)

// confirmMode values.
const (
	confirmNone = iota
	confirmRemove
	confirmClean
)

const (
	activityLines   = 4
	maxActivity     = 100
	defaultWidth    = 80
	defaultHeight   = 24
	errorDisplayFor = 5 * time.Second
)

type activityEntry struct {
	at   time.Time
	text string
}

// Model is the root Bubbletea model of the editor.
type Model struct {
	scanner  Counter
	launcher Spawner
	tray     shm.Cell
	logger   *slog.Logger
	now      func() time.Time

	list     *folderList
	form     *folderForm
	activity []activityEntry

	confirmMode int
	confirmPath string

	trayActive bool
	countGen   int
	pendingSel string

	err    error
	width  int
	height int
}

// NewModel creates the editor model.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		scanner:  opts.Scanner,
		launcher: opts.Launcher,
		tray:     opts.TrayActive,
		logger:   logger.With("component", "editor"),
		now:      time.Now,
		list:     newFolderList(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if m.tray != nil {
		m.trayActive = m.tray.Load()
	}
	m.list.setHeight(m.listHeight())
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadFoldersCmd()}
	if m.tray != nil {
		cmds = append(cmds, trayTick())
	}
	return tea.Batch(cmds...)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.setHeight(m.listHeight())
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case foldersLoadedMsg:
		m.list.setFolders(msg.folders)
		if m.pendingSel != "" {
			m.list.selectPath(m.pendingSel)
			m.pendingSel = ""
		}
		return m, m.recount()

	case countsMsg:
		if msg.gen == m.countGen {
			m.list.setCounts(msg.counts)
		}
		return m, nil

	case foldersChangedMsg:
		return m, loadFoldersCmd()

	case folderSavedMsg:
		m.form = nil
		m.pendingSel = msg.folder.Path
		m.record(fmt.Sprintf("Tracking %s (%d days)", msg.folder.Path, msg.folder.Days))
		return m, loadFoldersCmd()

	case folderRemovedMsg:
		m.record("Stopped tracking " + msg.path)
		return m, loadFoldersCmd()

	case cleanedMsg:
		m.record(fmt.Sprintf("Removed %d expired files from %s", msg.removed, msg.path))
		return m, m.recount()

	case trayStartedMsg:
		if !msg.ok {
			return m, m.showError(fmt.Errorf("could not start the tray agent"))
		}
		m.record("Tray agent started")
		return m, nil

	case trayTickMsg:
		if m.tray != nil {
			m.trayActive = m.tray.Load()
		}
		return m, trayTick()

	case errorMsg:
		if m.form != nil {
			m.form.err = msg.err
			return m, nil
		}
		return m, m.showError(msg.err)

	case clearErrorMsg:
		m.err = nil
		return m, nil
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

// recount starts a counting pass over the current folders.
func (m *Model) recount() tea.Cmd {
	m.countGen++
	return countCmd(m.scanner, m.list.folders, m.countGen)
}

func (m *Model) showError(err error) tea.Cmd {
	m.err = err
	m.logger.Warn("editor action failed", "error", err)
	return clearErrorAfter(errorDisplayFor)
}

// record appends a line to the activity log.
func (m *Model) record(text string) {
	m.logger.Info(text)
	m.activity = append(m.activity, activityEntry{at: m.now(), text: text})
	if len(m.activity) > maxActivity {
		m.activity = m.activity[len(m.activity)-maxActivity:]
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Up):
		m.list.moveUp()
	case key.Matches(msg, keys.Down):
		m.list.moveDown()
	case key.Matches(msg, keys.Add):
		m.form = newFolderForm(m.width)
		return textinputBlink()
	case key.Matches(msg, keys.Edit):
		if f, ok := m.list.selected(); ok {
			m.form = newFolderForm(m.width)
			m.form.preFill(f)
			return textinputBlink()
		}
	case key.Matches(msg, keys.Delete):
		if f, ok := m.list.selected(); ok {
			m.confirmMode = confirmRemove
			m.confirmPath = f.Path
		}
	case key.Matches(msg, keys.Clean):
		if f, ok := m.list.selected(); ok {
			m.confirmMode = confirmClean
			m.confirmPath = f.Path
		}
	case key.Matches(msg, keys.Rescan):
		m.list.setCounts(map[string]int{})
		return m.recount()
	case key.Matches(msg, keys.StartTray):
		if m.tray != nil && !m.trayActive && m.launcher != nil {
			return startTrayCmd(m.launcher)
		}
	case key.Matches(msg, keys.ClearLog):
		m.activity = nil
	}
	return nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	mode, path := m.confirmMode, m.confirmPath
	m.confirmMode = confirmNone
	m.confirmPath = ""

	if msg.String() != "y" && msg.String() != "Y" {
		return nil
	}
	switch mode {
	case confirmRemove:
		return removeFolderCmd(path)
	case confirmClean:
		for _, f := range m.list.folders {
			if f.Path == path {
				m.record("Cleaning " + path)
				return cleanCmd(m.scanner, f)
			}
		}
	}
	return nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, fKeys.Cancel):
		m.form = nil
		return nil
	case key.Matches(msg, fKeys.Next):
		m.form.focusNext()
		return nil
	case key.Matches(msg, fKeys.Prev):
		m.form.focusPrev()
		return nil
	case key.Matches(msg, fKeys.Submit):
		folder, err := m.form.value()
		if err != nil {
			m.form.err = err
			return nil
		}
		m.form.err = nil
		return saveFolderCmd(m.form.orig, folder)
	}
	return m.form.update(msg)
}

func (m Model) listHeight() int {
	// header, list panel border+title, summary, activity panel, status bar
	h := m.height - 1 - 3 - 1 - (3 + activityLines) - 1
	if h < 3 {
		h = 3
	}
	return h
}

// View renders the editor.
func (m Model) View() string {
	width := m.width
	if width < 40 {
		width = 40
	}
	inner := width - 2

	header := m.renderHeader(width)

	listBody := m.list.view(inner)
	listLines := strings.Count(listBody, "\n") + 1
	if pad := m.listHeight() - listLines; pad > 0 {
		listBody += strings.Repeat("\n", pad)
	}
	listPanel := panelStyle.Width(inner).Render(panelTitleStyle.Render("Tracked folders") + "\n" + listBody)

	summary := hintStyle.Render(fmt.Sprintf(" %d folders · %d expired files", len(m.list.folders), m.list.total()))

	activityPanel := panelStyle.Width(inner).Render(panelTitleStyle.Render("Activity") + "\n" + m.renderActivity(inner))

	view := lipgloss.JoinVertical(lipgloss.Left,
		header,
		listPanel,
		summary,
		activityPanel,
		renderStatusBar(&m, width),
	)

	if m.form != nil {
		return renderOverlay(view, m.form.view(), width, m.height)
	}
	return view
}

func (m Model) renderHeader(width int) string {
	left := " " + brandStyle.Render("AutoCleaner")

	var status string
	switch {
	case m.tray == nil:
		status = trayUnknownStyle.Render("tray status unavailable")
	case m.trayActive:
		status = trayRunningStyle.Render("● tray running")
	default:
		status = trayStoppedStyle.Render("○ tray stopped")
	}
	right := status + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderActivity(width int) string {
	start := len(m.activity) - activityLines
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, activityLines)
	for _, e := range m.activity[start:] {
		line := logTimeStyle.Render(e.at.Format("15:04:05")) + " " + e.text
		lines = append(lines, truncate(line, width))
	}
	for len(lines) < activityLines {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
