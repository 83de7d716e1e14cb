package domain

import "path/filepath"

// Directory and file names for secbot.
const (
	AppName               = "secbot"       // Directory name under XDG roots
	ConfigFileName        = "config.toml"  // Global config file name
	ProjectConfigFileName = ".secbot.toml" // Config file name in the working directory
	LogsDirName           = "logs"
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// ProjectConfigPath returns the project config path for a directory.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFileName)
}

// DataDir returns the secbot data directory.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppName)
}

// LogsDir returns the directory holding log files.
func LogsDir(dataDir string) string {
	return filepath.Join(dataDir, LogsDirName)
}

// GlobalLogPath returns the path to the log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(LogsDir(dataDir), "secbot.log")
}

// TasksStorePath returns the path to the tasks.json file.
func TasksStorePath(dataDir string) string {
	return filepath.Join(dataDir, "tasks.json")
}
