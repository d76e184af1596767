package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/autocleaner/autocleaner/internal/models"
)

// ErrNotDirectory is returned when a tracked folder path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// LoadFolders loads the tracked folder list from folders.yaml.
// A missing or unreadable file yields an empty list.
func LoadFolders() *models.FolderList {
	path, err := FoldersFile()
	if err != nil {
		return models.NewFolderList()
	}
	list, err := LoadYAMLOrDefault(path, models.NewFolderList)
	if err != nil {
		return models.NewFolderList()
	}
	if list.Folders == nil {
		list.Folders = []models.TrackedFolder{}
	}
	return list
}

// SaveFolders saves the tracked folder list to folders.yaml.
func SaveFolders(list *models.FolderList) error {
	path, err := FoldersFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, list)
}

// NormalizeFolderPath returns the absolute, cleaned form of path and checks
// that it names an existing directory.
func NormalizeFolderPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}
	return abs, nil
}

// AddFolder tracks path with the given age threshold and persists the list.
// An existing entry for the same directory has its threshold replaced.
func AddFolder(path string, days uint32) (models.TrackedFolder, error) {
	abs, err := NormalizeFolderPath(path)
	if err != nil {
		return models.TrackedFolder{}, err
	}

	folder := models.TrackedFolder{Path: abs, Days: days}
	list := LoadFolders()
	if i := list.Find(abs); i >= 0 {
		list.Folders[i] = folder
	} else {
		list.Folders = append(list.Folders, folder)
	}

	if err := SaveFolders(list); err != nil {
		return models.TrackedFolder{}, err
	}
	return folder, nil
}

// RemoveFolder stops tracking path. It reports whether an entry was removed.
func RemoveFolder(path string) (bool, error) {
	list := LoadFolders()

	i := list.Find(path)
	if i < 0 {
		if abs, err := filepath.Abs(path); err == nil {
			i = list.Find(abs)
		}
	}
	if i < 0 {
		return false, nil
	}

	list.Folders = append(list.Folders[:i], list.Folders[i+1:]...)
	if err := SaveFolders(list); err != nil {
		return false, err
	}
	return true, nil
}
