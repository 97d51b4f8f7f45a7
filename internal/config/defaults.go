package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables that override the default locations.
const (
	EnvConfigPath = "FPATH_CONFIG_PATH"
	EnvHome       = "FPATH_HOME"
)

// DefaultPath returns $FPATH_CONFIG_PATH, or ~/.config/fpath.toml when unset.
func DefaultPath() (string, error) {
	return fromEnvOrHome(EnvConfigPath, ".config", "fpath.toml")
}

// DefaultBaseDir returns $FPATH_HOME, or ~/.local/share/fpath when unset.
func DefaultBaseDir() (string, error) {
	return fromEnvOrHome(EnvHome, ".local", "share", "fpath")
}

// ResolvePath returns path if it is set and DefaultPath otherwise.
func ResolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultPath()
}

// Default returns NewConfig rooted at DefaultBaseDir.
func Default() (*Config, error) {
	baseDir, err := DefaultBaseDir()
	if err != nil {
		return nil, err
	}
	return NewConfig(baseDir), nil
}

func fromEnvOrHome(env string, elem ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}
