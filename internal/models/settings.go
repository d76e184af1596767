package models

// ScanConfig holds settings for scheduled scans run by the tray agent.
type ScanConfig struct {
	Schedule  string `yaml:"schedule"`   // cron expression, empty disables
	AutoClean bool   `yaml:"auto_clean"` // scheduled ticks delete instead of only counting
	Notify    bool   `yaml:"notify"`
}

// EditorConfig holds settings for the folder editor role.
type EditorConfig struct {
	Terminal []string `yaml:"terminal"` // command prefix used to open the editor; empty = detect
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level         string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	RetentionDays uint32 `yaml:"retention_days"`
}

// Settings represents global application settings.
// This corresponds to <config dir>/autocleaner/settings.yaml.
type Settings struct {
	Version  int          `yaml:"version"`
	ExecPath string       `yaml:"exec_path,omitempty"`
	Scan     ScanConfig   `yaml:"scan"`
	Editor   EditorConfig `yaml:"editor"`
	Log      LogConfig    `yaml:"log"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Scan: ScanConfig{
			Schedule:  "0 */6 * * *",
			AutoClean: false,
			Notify:    true,
		},
		Log: LogConfig{
			Level:         "info",
			RetentionDays: 14,
		},
	}
}
