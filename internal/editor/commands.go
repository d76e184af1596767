package editor

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autocleaner/autocleaner/internal/config"
	"github.com/autocleaner/autocleaner/internal/launcher"
	"github.com/autocleaner/autocleaner/internal/models"
)

// trayPollInterval is how often the tray-active flag is read.
const trayPollInterval = 2 * time.Second

func loadFoldersCmd() tea.Cmd {
	return func() tea.Msg {
		return foldersLoadedMsg{folders: config.LoadFolders().Folders}
	}
}

// countCmd scans every folder. gen identifies the pass so that results of
// an outdated pass can be dropped.
func countCmd(scanner Counter, folders []models.TrackedFolder, gen int) tea.Cmd {
	snapshot := append([]models.TrackedFolder(nil), folders...)
	return func() tea.Msg {
		counts := make(map[string]int, len(snapshot))
		for _, f := range snapshot {
			counts[f.Path] = scanner.Scan(f.Path, f.Days)
		}
		return countsMsg{gen: gen, counts: counts}
	}
}

// saveFolderCmd persists folder. When an edit changed the path, the old
// entry is removed after the new one is stored.
func saveFolderCmd(orig string, folder models.TrackedFolder) tea.Cmd {
	return func() tea.Msg {
		saved, err := config.AddFolder(folder.Path, folder.Days)
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to save folder: %w", err)}
		}
		if orig != "" && orig != saved.Path {
			if _, err := config.RemoveFolder(orig); err != nil {
				return errorMsg{err: fmt.Errorf("failed to remove %s: %w", orig, err)}
			}
		}
		return folderSavedMsg{folder: saved}
	}
}

func removeFolderCmd(path string) tea.Cmd {
	return func() tea.Msg {
		removed, err := config.RemoveFolder(path)
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to remove folder: %w", err)}
		}
		if !removed {
			return errorMsg{err: fmt.Errorf("%s is no longer tracked", path)}
		}
		return folderRemovedMsg{path: path}
	}
}

func cleanCmd(scanner Counter, folder models.TrackedFolder) tea.Cmd {
	return func() tea.Msg {
		return cleanedMsg{path: folder.Path, removed: scanner.Clean(folder.Path, folder.Days)}
	}
}

func startTrayCmd(spawner Spawner) tea.Cmd {
	return func() tea.Msg {
		return trayStartedMsg{ok: spawner.SpawnRole(launcher.RoleTray)}
	}
}

func trayTick() tea.Cmd {
	return tea.Tick(trayPollInterval, func(time.Time) tea.Msg {
		return trayTickMsg{}
	})
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
