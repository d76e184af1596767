package editor

import "github.com/autocleaner/autocleaner/internal/models"

// foldersLoadedMsg carries the persisted folder list.
type foldersLoadedMsg struct {
	folders []models.TrackedFolder
}

// countsMsg carries expired counts per folder path for one counting pass.
type countsMsg struct {
	gen    int
	counts map[string]int
}

// folderSavedMsg signals a folder was added or updated.
type folderSavedMsg struct {
	folder models.TrackedFolder
}

// folderRemovedMsg signals a folder is no longer tracked.
type folderRemovedMsg struct {
	path string
}

// cleanedMsg reports how many files a clean removed.
type cleanedMsg struct {
	path    string
	removed int
}

// trayStartedMsg reports whether the tray agent could be spawned.
type trayStartedMsg struct {
	ok bool
}

// foldersChangedMsg signals another process changed folders.yaml.
type foldersChangedMsg struct{}

// trayTickMsg polls the tray-active flag.
type trayTickMsg struct{}

type errorMsg struct {
	err error
}

type clearErrorMsg struct{}
