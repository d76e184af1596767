// Package config handles settings and folder-list persistence and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppDirName is the name of the per-user application directory.
	AppDirName = "autocleaner"

	// LogsDirName is the name of the logs directory.
	LogsDirName = "logs"

	// HomeEnv overrides the application directory when set.
	HomeEnv = "AUTOCLEANER_HOME"
)

// File names
const (
	SettingsFileName = "settings.yaml"
	FoldersFileName  = "folders.yaml"
	LockFileSuffix   = ".lock"
)

// AppDir returns the per-user application directory
// (<user config dir>/autocleaner, or $AUTOCLEANER_HOME).
func AppDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDirName), nil
}

// SettingsFile returns the path to the settings.yaml file.
func SettingsFile() (string, error) {
	return inAppDir(SettingsFileName)
}

// FoldersFile returns the path to the folders.yaml file.
func FoldersFile() (string, error) {
	return inAppDir(FoldersFileName)
}

// LogsDir returns the path to the logs directory.
func LogsDir() (string, error) {
	return inAppDir(LogsDirName)
}

// LockFile returns the path of the singleton lock file for a role (e.g. "gui.lock").
func LockFile(role string) (string, error) {
	return inAppDir(role + LockFileSuffix)
}

func inAppDir(name string) (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureAppDir creates the application directory if it doesn't exist.
func EnsureAppDir() error {
	dir, err := AppDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// EnsureLogsDir creates the logs directory if it doesn't exist.
func EnsureLogsDir() error {
	dir, err := LogsDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
