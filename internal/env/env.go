// Package env resolves the driver's own environment: its cache directory
// and the optional per-user configuration file.
package env

import (
	"os"
	"path/filepath"
)

// WorkDir returns the per-user cache directory droidozer keeps invocation
// logs and tool state in.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, "droidozer"), nil
}

// ConfigPath returns the driver config file location. DROIDOZER_CONFIG
// overrides the default of ~/.config/droidozer/config.toml.
func ConfigPath() (string, error) {
	if path := os.Getenv("DROIDOZER_CONFIG"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "droidozer", "config.toml"), nil
}
