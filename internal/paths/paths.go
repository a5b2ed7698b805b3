// Package paths resolves the default locations of ordoflow's files.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user directories.
const AppName = "ordoflow"

// DatabaseFileName is the default SQLite file name.
const DatabaseFileName = "ordoflow.db"

// ProjectConfigFileName is looked up in the working directory.
const ProjectConfigFileName = "ordoflow.toml"

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}

// DefaultDataDir returns the directory holding the task database.
func DefaultDataDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".local", "share", AppName), nil
}

// DefaultDatabasePath returns the default task database file.
func DefaultDatabasePath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, DatabaseFileName), nil
}

// GlobalConfigPath returns the per-user configuration file.
func GlobalConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// ResolveWithDefault returns override when set, or the result of defaultFn.
func ResolveWithDefault(override string, defaultFn func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return defaultFn()
}
