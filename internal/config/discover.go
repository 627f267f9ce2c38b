package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// maxSearchDepth bounds the upward directory walk when looking for .sjq.toml.
const maxSearchDepth = 20

// DiscoverRepoConfig walks up from startDir looking for a.sjq.toml file. It
// returns the absolute path of the first one found, or an empty string if
// none is found. The search stops at the filesystem root, at a.git
// directory boundary, or after maxSearchDepth levels, whichever comes first.
func DiscoverRepoConfig(startDir string) (string, error) {
	log := NewLogger("config")

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("abs path for %s: %w", startDir, err)
	}

	if resolved, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
		abs = resolved
	} else {
		log.Debug("symlink eval failed, using unresolved path", "dir", abs, "err", evalErr)
	}

	dir := abs
	for depth := 0; depth < maxSearchDepth; depth++ {
		configPath := filepath.Join(dir, ".sjq.toml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			log.Debug("discovered repo config", "path", configPath, "depth", depth)
			return configPath, nil
		}

		if _, statErr := os.Stat(filepath.Join(dir, ".git")); statErr == nil {
			log.Debug("reached.git boundary, stopping search", "dir", dir, "depth", depth)
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			log.Debug("reached filesystem root, no.sjq.toml found")
			return "", nil
		}
		dir = parent
	}

	log.Debug("reached max search depth without finding.sjq.toml", "maxDepth", maxSearchDepth)
	return "", nil
}

// DiscoverGlobalConfig returns the path to the global sjq configuration
// file, following XDG Base Directory conventions. It returns an empty
// string if the file does not exist; no error for a missing file.
//
// Priority:
// - $XDG_CONFIG_HOME/sjq/config.toml (if XDG_CONFIG_HOME is set)
// - ~/.config/sjq/config.toml (Linux/macOS)
// - %APPDATA%\sjq\config.toml (Windows)
func DiscoverGlobalConfig() (string, error) {
	log := NewLogger("config")

	configDir, err := globalConfigDir()
	if err != nil {
		return "", fmt.Errorf("determining global config dir: %w", err)
	}

	path := filepath.Join(configDir, "sjq", "config.toml")

	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) {
			log.Debug("global config not found", "path", path)
			return "", nil
		}
		return "", fmt.Errorf("stat global config %s: %w", path, statErr)
	}

	log.Debug("discovered global config", "path", path)
	return path, nil
}

func globalConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData, nil
		}
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("user config dir: %w", err)
		}
		return dir, nil
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("user home dir: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}
