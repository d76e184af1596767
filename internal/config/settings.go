package config

import (
	"os"

	"github.com/autocleaner/autocleaner/internal/models"
)

// LoadSettings loads the global settings from settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadYAMLOrDefault(path, models.NewSettings)
}

// LoadSettingsOrDefault is LoadSettings for callers that cannot do anything
// useful with a broken settings file: any error yields the defaults.
func LoadSettingsOrDefault() *models.Settings {
	s, err := LoadSettings()
	if err != nil {
		return models.NewSettings()
	}
	return s
}

// SaveSettings saves the global settings to settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := SettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// SaveExecPath records the path of the running executable in settings.yaml,
// leaving every other setting untouched.
func SaveExecPath(execPath string) error {
	settings, err := LoadSettings()
	if err != nil {
		settings = models.NewSettings()
	}
	settings.ExecPath = execPath
	return SaveSettings(settings)
}

// ExecPath returns the last saved executable path, falling back to the
// running executable when none was saved.
func ExecPath() (string, error) {
	if s, err := LoadSettings(); err == nil && s.ExecPath != "" {
		return s.ExecPath, nil
	}
	return os.Executable()
}
