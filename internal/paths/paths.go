// Package paths resolves the eav configuration and catalog data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
)

// appName names the per-user configuration directory.
const appName = "eav"

// File and directory names.
const (
	ConfigFileName     = "config.yaml"
	DefaultDataDirName = ".eav-catalog"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "EAV_CONFIG_DIR"
	EnvDataDir   = "EAV_DATA_DIR"
)

// platformDir holds platform lookups; tests replace them.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/eav (fallback ~/.config/eav)
// macOS:   ~/Library/Application Support/eav
// Windows: %APPDATA%/eav
func DefaultConfigDir() (string, error) {
	if platformDir.goos == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolving home directory")
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving user config directory")
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > EAV_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the catalog data directory following the precedence
// chain: flag > data_dir from config.yaml > EAV_DATA_DIR > $(CWD)/.eav-catalog.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, candidate := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", errors.Wrap(err, "resolving working directory")
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}
