// Package models defines the persisted records of AutoCleaner.
package models

// TrackedFolder is a directory monitored for expired files.
type TrackedFolder struct {
	Path string `yaml:"path"`
	Days uint32 `yaml:"days"` // files older than this many days are expired
}

// FolderList represents the tracked folders record.
// This corresponds to <config dir>/autocleaner/folders.yaml.
type FolderList struct {
	Version int             `yaml:"version"`
	Folders []TrackedFolder `yaml:"folders"`
}

// NewFolderList creates an empty folder list.
func NewFolderList() *FolderList {
	return &FolderList{
		Version: 1,
		Folders: []TrackedFolder{},
	}
}

// Find returns the index of the folder with the given path, or -1.
func (l *FolderList) Find(path string) int {
	for i, f := range l.Folders {
		if f.Path == path {
			return i
		}
	}
	return -1
}
