package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the XDG-compliant user config path
// (~/.config/shiplog/config.yml).
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "shiplog", "config.yml"), nil
}

// ProjectConfigPath returns the project-local config path relative to the
// current directory.
func ProjectConfigPath() string {
	return filepath.Join(".shiplog", "config.yml")
}
